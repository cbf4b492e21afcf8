package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/google/uuid"
)

// SaveSnapshot stores raw as a new snapshot and returns its description.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, source, label string, raw model.RawTable) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(source, "source"); err != nil {
		return nil, err
	}
	if err := validateRawTable(raw); err != nil {
		return nil, err
	}

	headers, err := json.Marshal(raw.Headers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode headers: %w", err)
	}

	snap := &model.Snapshot{
		ID:        uuid.NewString(),
		Source:    source,
		Label:     strings.TrimSpace(label),
		RowCount:  len(raw.Rows),
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, source, label, headers, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Source, snap.Label, string(headers), snap.RowCount, snap.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_rows (snapshot_id, position, cells) VALUES (?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, row := range raw.Rows {
		var cells []byte
		cells, err = json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("failed to encode row %d: %w", i+1, err)
		}
		if _, err = stmt.ExecContext(ctx, snap.ID, i, string(cells)); err != nil {
			return nil, fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	slog.Info("Saved snapshot", "id", snap.ID, "source", source, "rows", snap.RowCount)
	return snap, nil
}

// ListSnapshots returns every snapshot, newest first.
func (s *SQLiteStorage) ListSnapshots(ctx context.Context) ([]model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, label, row_count, created_at
		FROM snapshots
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Source, &snap.Label, &snap.RowCount, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

// GetSnapshot returns the description of one snapshot.
func (s *SQLiteStorage) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var snap model.Snapshot
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, label, row_count, created_at
		FROM snapshots WHERE id = ?
	`, id).Scan(&snap.ID, &snap.Source, &snap.Label, &snap.RowCount, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: snapshot %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return &snap, nil
}

// SnapshotData reads a snapshot's cells back in their original order.
func (s *SQLiteStorage) SnapshotData(ctx context.Context, id string) (model.RawTable, error) {
	if err := validateContext(ctx); err != nil {
		return model.RawTable{}, err
	}
	if err := validateString(id, "id"); err != nil {
		return model.RawTable{}, err
	}

	var headersJSON string
	err := s.db.QueryRowContext(ctx, `SELECT headers FROM snapshots WHERE id = ?`, id).Scan(&headersJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RawTable{}, fmt.Errorf("%w: snapshot %s", common.ErrNotFound, id)
	}
	if err != nil {
		return model.RawTable{}, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var raw model.RawTable
	if err := json.Unmarshal([]byte(headersJSON), &raw.Headers); err != nil {
		return model.RawTable{}, fmt.Errorf("%w: headers: %w", ErrInvalidRawData, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT cells FROM snapshot_rows WHERE snapshot_id = ? ORDER BY position
	`, id)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("failed to query snapshot rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var cellsJSON string
		if err := rows.Scan(&cellsJSON); err != nil {
			return model.RawTable{}, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return model.RawTable{}, fmt.Errorf("%w: row %d: %w", ErrInvalidRawData, len(raw.Rows)+1, err)
		}
		raw.Rows = append(raw.Rows, cells)
	}

	return raw, rows.Err()
}

// DeleteSnapshot removes a snapshot and its rows.
func (s *SQLiteStorage) DeleteSnapshot(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: snapshot %s", common.ErrNotFound, id)
	}

	slog.Info("Deleted snapshot", "id", id)
	return nil
}
