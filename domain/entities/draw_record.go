package entities

import "time"

// DrawRecord is the persisted history of a completed draw
type DrawRecord struct {
	ID            int64     `db:"id"`
	RequestID     string    `db:"request_id"`     // Correlation id of the randomness request
	RandomWord    int64     `db:"random_word"`    // First random word delivered by the provider
	WinnerAddress string    `db:"winner_address"`
	WinnerIndex   int       `db:"winner_index"`
	PotAmount     int64     `db:"pot_amount"`
	EntryCount    int       `db:"entry_count"`
	CompletedAt   time.Time `db:"completed_at"`
	CreatedAt     time.Time `db:"created_at"`
}
