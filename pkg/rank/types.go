package rank

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Unranked is returned for counts below every threshold in a table
const Unranked = "Unranked"

var (
	// ErrInvalidTable is returned when a rank table fails validation
	ErrInvalidTable = errors.New("invalid rank table")

	// ErrUnknownPreset is returned when a preset name is not recognized
	ErrUnknownPreset = errors.New("unknown rank preset")

	// ErrUnknownPolicy is returned when a policy name is not recognized
	ErrUnknownPolicy = errors.New("unknown rank policy")
)

var validate = validator.New()

// Threshold pairs a rank name with the minimum sign-in count that earns it
type Threshold struct {
	Name string `json:"name" validate:"required"`
	Min  int    `json:"threshold" validate:"gte=0"`
}

// Table is an ordered, immutable sequence of thresholds
type Table struct {
	entries []Threshold
}

// NewTable validates entries and returns a Table holding a copy of them.
// Names must be non-empty and unique, thresholds must not be negative.
func NewTable(entries ...Threshold) (Table, error) {
	if len(entries) == 0 {
		return Table{}, fmt.Errorf("%w: no entries", ErrInvalidTable)
	}

	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if err := validate.Struct(e); err != nil {
			return Table{}, fmt.Errorf("%w: entry %d: %v", ErrInvalidTable, i, err)
		}
		if _, dup := seen[e.Name]; dup {
			return Table{}, fmt.Errorf("%w: duplicate rank %q", ErrInvalidTable, e.Name)
		}
		seen[e.Name] = struct{}{}
	}

	cp := make([]Threshold, len(entries))
	copy(cp, entries)
	return Table{entries: cp}, nil
}

// MustTable is like NewTable but panics on invalid input
func MustTable(entries ...Threshold) Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the table in declared order
func (t Table) Entries() []Threshold {
	cp := make([]Threshold, len(t.entries))
	copy(cp, t.entries)
	return cp
}

// Len returns the number of entries
func (t Table) Len() int {
	return len(t.entries)
}

// Lookup returns the rank earned by count n under the given policy
func (t Table) Lookup(n int, policy Policy) string {
	if policy == DeclaredOrder {
		for _, e := range t.entries {
			if e.Min <= n {
				return e.Name
			}
		}
		return Unranked
	}

	name := Unranked
	best := -1
	for _, e := range t.entries {
		// >= so the later declaration wins a tie
		if e.Min <= n && e.Min >= best {
			best = e.Min
			name = e.Name
		}
	}
	return name
}

// Policy selects how Lookup picks among the thresholds a count satisfies
type Policy int

const (
	// HighestMatch picks the entry with the highest threshold not above the count
	HighestMatch Policy = iota
	// DeclaredOrder picks the first satisfied entry in declared order.
	// With an ascending table this yields the lowest qualifying rank.
	DeclaredOrder
)

// String implements fmt.Stringer
func (p Policy) String() string {
	switch p {
	case HighestMatch:
		return "highest"
	case DeclaredOrder:
		return "declared"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a config value into a Policy. Empty means HighestMatch.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "highest":
		return HighestMatch, nil
	case "declared":
		return DeclaredOrder, nil
	default:
		return HighestMatch, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Preset names
const (
	PresetWidget  = "widget"
	PresetUbiCent = "ubicent"
)

// DefaultTable returns the widget's Bronze/Silver/Gold/Platinum table
func DefaultTable() Table {
	return MustTable(
		Threshold{Name: "Bronze", Min: 50},
		Threshold{Name: "Silver", Min: 100},
		Threshold{Name: "Gold", Min: 200},
		Threshold{Name: "Platinum", Min: 300},
	)
}

// UbiCentTable returns the bot's long-form rank ladder
func UbiCentTable() Table {
	return MustTable(
		Threshold{Name: "Member", Min: 1},
		Threshold{Name: "Bonk", Min: 120},
		Threshold{Name: "Dorm", Min: 200},
		Threshold{Name: "Area", Min: 250},
		Threshold{Name: "City", Min: 320},
		Threshold{Name: "State", Min: 400},
		Threshold{Name: "Zonal", Min: 500},
		Threshold{Name: "National", Min: 600},
		Threshold{Name: "Regional", Min: 700},
		Threshold{Name: "Global", Min: 1000},
		Threshold{Name: "Universal", Min: 1500},
	)
}

// Preset returns a built-in table by name. Empty means the widget table.
func Preset(name string) (Table, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetWidget:
		return DefaultTable(), nil
	case PresetUbiCent:
		return UbiCentTable(), nil
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}
