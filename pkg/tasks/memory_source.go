package tasks

// MemorySource implements Source over a fixed in-memory list
type MemorySource struct {
	tasks []Task
}

// NewMemorySource creates a MemorySource holding a copy of list.
// A nil list yields the default tasks.
func NewMemorySource(list []Task) *MemorySource {
	if list == nil {
		list = DefaultTasks()
	}
	cp := make([]Task, len(list))
	copy(cp, list)
	return &MemorySource{tasks: cp}
}

// LoadTasks implements Source
func (s *MemorySource) LoadTasks() ([]Task, error) {
	if err := Validate(s.tasks); err != nil {
		return nil, err
	}
	cp := make([]Task, len(s.tasks))
	copy(cp, s.tasks)
	return cp, nil
}
