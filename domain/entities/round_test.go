package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRound(t *testing.T) {
	t.Parallel()

	now := time.Now()
	round := NewRound(now)

	assert.Equal(t, RoundStateOpen, round.State)
	assert.True(t, round.IsOpen())
	assert.False(t, round.IsCalculating())
	assert.Empty(t, round.Entries)
	assert.Zero(t, round.PooledValue)
	assert.Equal(t, now, round.LastDrawTime)
	assert.Nil(t, round.PendingRequestID)
}

func TestRound_AddEntry(t *testing.T) {
	t.Parallel()

	round := NewRound(time.Now())

	round.AddEntry("alice", 100)
	round.AddEntry("bob", 100)
	round.AddEntry("alice", 150) // duplicates occupy their own slots

	assert.Equal(t, []string{"alice", "bob", "alice"}, round.Entries)
	assert.Equal(t, int64(350), round.PooledValue)
}

func TestRound_BeginCalculating(t *testing.T) {
	t.Parallel()

	round := NewRound(time.Now())
	round.AddEntry("alice", 100)

	round.BeginCalculating("req-1")

	assert.Equal(t, RoundStateCalculating, round.State)
	assert.NotNil(t, round.PendingRequestID)
	assert.Equal(t, "req-1", *round.PendingRequestID)

	// A second transition attempt must not replace the pending request
	round.BeginCalculating("req-2")
	assert.Equal(t, "req-1", *round.PendingRequestID)
}

func TestRound_MatchesPendingRequest(t *testing.T) {
	t.Parallel()

	round := NewRound(time.Now())

	// No pending request yet
	assert.False(t, round.MatchesPendingRequest("req-1"))

	round.AddEntry("alice", 100)
	round.BeginCalculating("req-1")

	assert.True(t, round.MatchesPendingRequest("req-1"))
	assert.False(t, round.MatchesPendingRequest("req-2"))
}

func TestRound_WinnerIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		entries    []string
		randomWord uint64
		want       int
	}{
		{name: "single entry always wins", entries: []string{"alice"}, randomWord: 999, want: 0},
		{name: "word zero", entries: []string{"a", "b", "c", "d", "e"}, randomWord: 0, want: 0},
		{name: "word below count", entries: []string{"a", "b", "c", "d", "e"}, randomWord: 4, want: 4},
		{name: "word wraps around", entries: []string{"a", "b", "c", "d", "e"}, randomWord: 5, want: 0},
		{name: "large word", entries: []string{"a", "b", "c"}, randomWord: 42, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			round := NewRound(time.Now())
			for _, entry := range tt.entries {
				round.AddEntry(entry, 100)
			}

			assert.Equal(t, tt.want, round.WinnerIndex(tt.randomWord))
		})
	}
}

func TestRound_Complete(t *testing.T) {
	t.Parallel()

	start := time.Now().Add(-time.Hour)
	round := NewRound(start)
	round.AddEntry("alice", 100)
	round.AddEntry("bob", 100)
	round.BeginCalculating("req-1")

	completedAt := time.Now()
	round.Complete(completedAt)

	assert.Equal(t, RoundStateOpen, round.State)
	assert.Empty(t, round.Entries)
	assert.Zero(t, round.PooledValue)
	assert.Nil(t, round.PendingRequestID)
	assert.Equal(t, completedAt, round.LastDrawTime)
}
