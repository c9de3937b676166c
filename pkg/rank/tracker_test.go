package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_RecordSignIn(t *testing.T) {
	t.Run("counts start at one and step by one", func(t *testing.T) {
		tracker := NewTracker(DefaultTable(), HighestMatch)
		assert.Equal(t, 0, tracker.Count())

		for want := 1; want <= 60; want++ {
			got, _ := tracker.RecordSignIn()
			if got != want {
				t.Fatalf("sign-in %d: expected count %d, got %d", want, want, got)
			}
		}
		assert.Equal(t, 60, tracker.Count())
		assert.Equal(t, "Bronze", tracker.Current())
	})

	t.Run("three sign-ins from fresh stay unranked", func(t *testing.T) {
		tracker := NewTracker(DefaultTable(), HighestMatch)

		for i := 1; i <= 3; i++ {
			count, rank := tracker.RecordSignIn()
			assert.Equal(t, i, count)
			assert.Equal(t, Unranked, rank)
		}
	})

	t.Run("trackers are independent", func(t *testing.T) {
		a := NewTracker(DefaultTable(), HighestMatch)
		b := NewTracker(DefaultTable(), HighestMatch)

		a.RecordSignIn()
		a.RecordSignIn()
		count, _ := b.RecordSignIn()

		assert.Equal(t, 1, count)
		assert.Equal(t, 2, a.Count())
	})

	t.Run("rank at the fiftieth sign-in", func(t *testing.T) {
		tracker := NewTracker(DefaultTable(), HighestMatch)
		var rank string
		for i := 0; i < 49; i++ {
			_, rank = tracker.RecordSignIn()
		}
		assert.Equal(t, Unranked, rank)

		count, rank := tracker.RecordSignIn()
		assert.Equal(t, 50, count)
		assert.Equal(t, "Bronze", rank)
	})
}

func TestTracker_Rank(t *testing.T) {
	tests := []struct {
		n        int
		highest  string
		declared string
	}{
		{0, Unranked, Unranked},
		{49, Unranked, Unranked},
		{50, "Bronze", "Bronze"},
		{99, "Bronze", "Bronze"},
		{100, "Silver", "Bronze"},
		{199, "Silver", "Bronze"},
		{200, "Gold", "Bronze"},
		{250, "Gold", "Bronze"},
		{300, "Platinum", "Bronze"},
		{1000, "Platinum", "Bronze"},
	}

	highest := NewTracker(DefaultTable(), HighestMatch)
	declared := NewTracker(DefaultTable(), DeclaredOrder)

	for _, tt := range tests {
		assert.Equal(t, tt.highest, highest.Rank(tt.n), "highest match at %d", tt.n)
		assert.Equal(t, tt.declared, declared.Rank(tt.n), "declared order at %d", tt.n)
	}

	t.Run("rank is pure", func(t *testing.T) {
		tracker := NewTracker(DefaultTable(), HighestMatch)
		first := tracker.Rank(150)
		second := tracker.Rank(150)
		assert.Equal(t, first, second)
		assert.Equal(t, 0, tracker.Count())
	})
}

func TestTracker_ZeroTable(t *testing.T) {
	tracker := NewTracker(Table{}, HighestMatch)
	count, rank := tracker.RecordSignIn()
	assert.Equal(t, 1, count)
	assert.Equal(t, Unranked, rank)
}
