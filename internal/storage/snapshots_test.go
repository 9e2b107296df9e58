package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/Veraticus/grievance-intel/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func sampleGrievances() []model.Grievance {
	high := "High"
	water := "Water Supply"
	return []model.Grievance{
		{
			ID:               "2",
			Title:            "Water shortage",
			Description:      "No water for 3 days",
			Priority:         &high,
			Category:         &water,
			CreatedAt:        time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
			SuggestedSchemes: []string{"Jal Jeevan Mission"},
		},
		{
			ID:          "1",
			Title:       "Street light",
			Description: "Broken since May",
			CreatedAt:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Migrate(ctx))

	var version int
	require.NoError(t, s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestLoadSnapshot_Empty(t *testing.T) {
	s := setupTestStorage(t)

	_, err := s.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSnapshot_RoundTripPreservesOrder(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	before := time.Now()
	require.NoError(t, s.SaveSnapshot(ctx, sampleGrievances()))

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Grievances, 2)

	assert.Equal(t, "2", snap.Grievances[0].ID)
	assert.Equal(t, "1", snap.Grievances[1].ID)
	assert.Equal(t, "High", *snap.Grievances[0].Priority)
	assert.Nil(t, snap.Grievances[1].Priority)
	assert.Equal(t, []string{"Jal Jeevan Mission"}, snap.Grievances[0].SuggestedSchemes)
	assert.False(t, snap.SavedAt.Before(before.Add(-time.Second)))
}

func TestSaveSnapshot_ReplacesWholesale(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, sampleGrievances()))
	require.NoError(t, s.SaveSnapshot(ctx, sampleGrievances()[1:]))

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Grievances, 1)
	assert.Equal(t, "1", snap.Grievances[0].ID)

	require.NoError(t, s.SaveSnapshot(ctx, nil))
	snap, err = s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Grievances)
}

func TestOpen_FileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.SaveSnapshot(ctx, sampleGrievances()))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, path, reopened.Path())
	snap, err := reopened.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Grievances, 2)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}
