package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/Veraticus/grievance-intel/internal/model"
	"github.com/Veraticus/grievance-intel/internal/service"
)

// SaveSnapshot replaces the cached grievance list. Row order is the list order.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, grievances []model.Grievance) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_grievances`); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_grievances (position, grievance_id, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, g := range grievances {
		payload, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("failed to encode grievance %s: %w", g.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, i, g.ID, string(payload)); err != nil {
			return fmt.Errorf("failed to save grievance %s: %w", g.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, saved_at, record_count) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at, record_count = excluded.record_count`,
		time.Now().UnixNano(), len(grievances))
	if err != nil {
		return fmt.Errorf("failed to save snapshot header: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot returns the cached grievance list, or common.ErrNotFound when
// nothing has been saved yet.
func (s *SQLiteStorage) LoadSnapshot(ctx context.Context) (*service.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var savedAt int64
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT saved_at, record_count FROM snapshots WHERE id = 1`).Scan(&savedAt, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot header: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM snapshot_grievances ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	grievances := make([]model.Grievance, 0, count)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		var g model.Grievance
		if err := json.Unmarshal([]byte(payload), &g); err != nil {
			return nil, fmt.Errorf("failed to decode cached grievance: %w", err)
		}
		grievances = append(grievances, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot: %w", err)
	}

	if len(grievances) != count {
		return nil, fmt.Errorf("%w: snapshot header lists %d records, found %d",
			common.ErrCacheUnavailable, count, len(grievances))
	}

	return &service.Snapshot{
		SavedAt:    time.Unix(0, savedAt),
		Grievances: grievances,
	}, nil
}

// Open creates, migrates and returns a snapshot cache at path.
func Open(ctx context.Context, path string) (*SQLiteStorage, error) {
	s, err := NewSQLiteStorage(path)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to migrate snapshot cache: %w", err)
	}
	return s, nil
}

var _ service.SnapshotCache = (*SQLiteStorage)(nil)
