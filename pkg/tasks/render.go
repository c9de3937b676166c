package tasks

import "strings"

const (
	listHeader = "Here are your active tasks:\n"
	emptyList  = "You have no active tasks."
)

// Render formats the list one "description: url" line per task
func Render(list []Task) string {
	if len(list) == 0 {
		return emptyList
	}

	var b strings.Builder
	b.WriteString(listHeader)
	for _, t := range list {
		b.WriteString(t.Description)
		b.WriteString(": ")
		b.WriteString(t.URL)
		b.WriteString("\n")
	}
	return b.String()
}
