package entities

import (
	"time"
)

// RoundState represents the lifecycle state of a lottery round
type RoundState string

const (
	RoundStateOpen        RoundState = "open"
	RoundStateCalculating RoundState = "calculating"
)

// Round is the single active lottery round. Entries are kept in insertion
// order because the winner is selected by index; one participant may enter
// multiple times, each entry occupying its own slot.
type Round struct {
	Entries          []string
	PooledValue      int64
	State            RoundState
	LastDrawTime     time.Time
	PendingRequestID *string
}

// NewRound creates a fresh open round with no entries
func NewRound(now time.Time) *Round {
	return &Round{
		State:        RoundStateOpen,
		LastDrawTime: now,
	}
}

// IsOpen checks if the round is accepting entries
func (r *Round) IsOpen() bool {
	return r.State == RoundStateOpen
}

// IsCalculating checks if the round is awaiting a randomness delivery
func (r *Round) IsCalculating() bool {
	return r.State == RoundStateCalculating
}

// AddEntry appends a participant entry and adds the paid fee to the pot.
// Callers must only invoke this while the round is open.
func (r *Round) AddEntry(participant string, feePaid int64) {
	r.Entries = append(r.Entries, participant)
	r.PooledValue += feePaid
}

// BeginCalculating transitions the round to the calculating state and
// records the correlation id of the outstanding randomness request
func (r *Round) BeginCalculating(requestID string) {
	if r.State == RoundStateOpen {
		r.State = RoundStateCalculating
		r.PendingRequestID = &requestID
	}
}

// MatchesPendingRequest reports whether the given correlation id matches
// the outstanding randomness request, if any
func (r *Round) MatchesPendingRequest(requestID string) bool {
	return r.PendingRequestID != nil && *r.PendingRequestID == requestID
}

// WinnerIndex maps a random word onto an entry index.
// Callers must guarantee the round has at least one entry.
func (r *Round) WinnerIndex(randomWord uint64) int {
	return int(randomWord % uint64(len(r.Entries)))
}

// Complete resets the round for the next cycle: entries and pot cleared,
// pending request cleared, last draw time stamped, state back to open
func (r *Round) Complete(now time.Time) {
	r.Entries = nil
	r.PooledValue = 0
	r.PendingRequestID = nil
	r.LastDrawTime = now
	r.State = RoundStateOpen
}
