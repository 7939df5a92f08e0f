package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeRaffleEntered EventType = "raffle_entered"
	EventTypeDrawRequested EventType = "draw_requested"
	EventTypeWinnerPicked  EventType = "winner_picked"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// RaffleEnteredEvent represents a participant entering the active round
type RaffleEnteredEvent struct {
	Participant string
	FeePaid     int64
	EntryCount  int
	PooledValue int64
}

func (e RaffleEnteredEvent) Type() EventType {
	return EventTypeRaffleEntered
}

// DrawRequestedEvent represents a draw starting and a randomness request
// being submitted to the provider
type DrawRequestedEvent struct {
	RequestID   string
	EntryCount  int
	PooledValue int64
}

func (e DrawRequestedEvent) Type() EventType {
	return EventTypeDrawRequested
}

// WinnerPickedEvent represents a completed draw with the winner paid out
type WinnerPickedEvent struct {
	RequestID   string
	Winner      string
	WinnerIndex int
	Payout      int64
}

func (e WinnerPickedEvent) Type() EventType {
	return EventTypeWinnerPicked
}
