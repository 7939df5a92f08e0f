package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"
	"github.com/Landon87/florida-crypto-lottery/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDrawRecord(requestID string, completedAt time.Time) *entities.DrawRecord {
	return &entities.DrawRecord{
		RequestID:     requestID,
		RandomWord:    42,
		WinnerAddress: "0xabc123",
		WinnerIndex:   2,
		PotAmount:     300,
		EntryCount:    3,
		CompletedAt:   completedAt,
	}
}

func TestDrawRecordRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewDrawRecordRepository(testDB.DB, nil)
	ctx := context.Background()

	record := createTestDrawRecord("req-1", time.Now().UTC())
	err := repo.Create(ctx, record)
	require.NoError(t, err)

	assert.NotZero(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestDrawRecordRepository_Create_DuplicateRequestID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewDrawRecordRepository(testDB.DB, nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestDrawRecord("req-1", time.Now().UTC())))

	// The same randomness request can only complete one draw
	err := repo.Create(ctx, createTestDrawRecord("req-1", time.Now().UTC()))
	assert.Error(t, err)
}

func TestDrawRecordRepository_ListRecent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewDrawRecordRepository(testDB.DB, nil)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Create(ctx, createTestDrawRecord("req-1", base.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, createTestDrawRecord("req-2", base.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, createTestDrawRecord("req-3", base)))

	records, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first
	assert.Equal(t, "req-3", records[0].RequestID)
	assert.Equal(t, "req-2", records[1].RequestID)
}

func TestDrawRecordRepository_ListRecent_DefaultLimit(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewDrawRecordRepository(testDB.DB, nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, createTestDrawRecord("req-1", time.Now().UTC())))

	records, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestDrawRecordRepository_ListRecent_Empty(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewDrawRecordRepository(testDB.DB, nil)

	records, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
