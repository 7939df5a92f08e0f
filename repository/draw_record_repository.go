package repository

import (
	"context"
	"fmt"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"
	"github.com/Landon87/florida-crypto-lottery/infrastructure/observability"
)

const defaultDrawListLimit = 20

// DrawRecordRepository implements completed draw history data access
type DrawRecordRepository struct {
	q       Queryable
	metrics *observability.MetricsProvider
}

// NewDrawRecordRepository creates a new draw record repository
func NewDrawRecordRepository(q Queryable, metrics *observability.MetricsProvider) *DrawRecordRepository {
	return &DrawRecordRepository{
		q:       q,
		metrics: metrics,
	}
}

// Create persists a completed draw record
func (r *DrawRecordRepository) Create(ctx context.Context, record *entities.DrawRecord) error {
	defer r.metrics.TimeDatabaseQuery("draw_record", "Create")()

	query := `
		INSERT INTO draw_records (request_id, random_word, winner_address, winner_index,
		                          pot_amount, entry_count, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		record.RequestID,
		record.RandomWord,
		record.WinnerAddress,
		record.WinnerIndex,
		record.PotAmount,
		record.EntryCount,
		record.CompletedAt,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create draw record: %w", err)
	}

	return nil
}

// ListRecent returns the most recently completed draws, newest first
func (r *DrawRecordRepository) ListRecent(ctx context.Context, limit int) ([]*entities.DrawRecord, error) {
	defer r.metrics.TimeDatabaseQuery("draw_record", "ListRecent")()

	if limit <= 0 {
		limit = defaultDrawListLimit
	}

	query := `
		SELECT id, request_id, random_word, winner_address, winner_index,
		       pot_amount, entry_count, completed_at, created_at
		FROM draw_records
		ORDER BY completed_at DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list draw records: %w", err)
	}
	defer rows.Close()

	var records []*entities.DrawRecord
	for rows.Next() {
		var record entities.DrawRecord
		if err := rows.Scan(
			&record.ID,
			&record.RequestID,
			&record.RandomWord,
			&record.WinnerAddress,
			&record.WinnerIndex,
			&record.PotAmount,
			&record.EntryCount,
			&record.CompletedAt,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan draw record: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draw records: %w", err)
	}

	return records, nil
}
