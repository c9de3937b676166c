package rank

// Tracker counts sign-ins for one session and derives the current rank.
// It is not safe for concurrent use; a session drives it from a single goroutine.
type Tracker struct {
	count  int
	table  Table
	policy Policy
}

// NewTracker creates a tracker with a zero count
func NewTracker(table Table, policy Policy) *Tracker {
	return &Tracker{
		table:  table,
		policy: policy,
	}
}

// RecordSignIn increments the count by one and returns the new count and rank
func (t *Tracker) RecordSignIn() (int, string) {
	t.count++
	return t.count, t.Rank(t.count)
}

// Rank returns the rank earned by n sign-ins. It does not touch the count.
func (t *Tracker) Rank(n int) string {
	return t.table.Lookup(n, t.policy)
}

// Count returns the number of sign-ins recorded so far
func (t *Tracker) Count() int {
	return t.count
}

// Current returns the rank for the current count
func (t *Tracker) Current() string {
	return t.Rank(t.count)
}

// Table returns the tracker's rank table
func (t *Tracker) Table() Table {
	return t.table
}

// Policy returns the tracker's selection policy
func (t *Tracker) Policy() Policy {
	return t.policy
}
