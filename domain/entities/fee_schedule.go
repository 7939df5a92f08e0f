package entities

import "time"

// FeeSchedule is the immutable per-deployment lottery configuration,
// captured once at construction time
type FeeSchedule struct {
	TicketPrice  int64         // Fixed fee per entry
	DrawInterval time.Duration // Minimum time between draws
	MinPot       int64         // Minimum pot required before a draw may start
}

// VRFParams are the randomness provider request parameters. They are
// opaque to the round lifecycle and passed through to the provider as-is.
type VRFParams struct {
	KeyHash              string
	CallbackGasLimit     uint32
	RequestConfirmations uint16
	NumWords             uint32
}
