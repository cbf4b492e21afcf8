package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/google/uuid"
)

func TestSaveSnapshot_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	raw := testRawTable(3)
	raw.Rows[1] = raw.Rows[1][:1] // short rows survive as stored

	snap, err := store.SaveSnapshot(ctx, "results.csv", "  q1 run ", raw)
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if _, err := uuid.Parse(snap.ID); err != nil {
		t.Errorf("snapshot id %q is not a uuid: %v", snap.ID, err)
	}
	if snap.Label != "q1 run" {
		t.Errorf("Label = %q, want trimmed label", snap.Label)
	}
	if snap.RowCount != 3 {
		t.Errorf("RowCount = %d, want 3", snap.RowCount)
	}

	got, err := store.SnapshotData(ctx, snap.ID)
	if err != nil {
		t.Fatalf("SnapshotData() error = %v", err)
	}
	if !reflect.DeepEqual(got, raw) {
		t.Errorf("SnapshotData() = %#v, want %#v", got, raw)
	}

	stored, err := store.GetSnapshot(ctx, snap.ID)
	if err != nil {
		t.Fatalf("GetSnapshot() error = %v", err)
	}
	if stored.Source != "results.csv" || stored.RowCount != 3 {
		t.Errorf("GetSnapshot() = %+v", stored)
	}
	if stored.CreatedAt.Sub(snap.CreatedAt).Abs() > time.Second {
		t.Errorf("CreatedAt = %v, want %v", stored.CreatedAt, snap.CreatedAt)
	}
}

func TestListSnapshots_NewestFirst(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	list, err := store.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots() error = %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("ListSnapshots() on empty store = %d snapshots", len(list))
	}

	first, err := store.SaveSnapshot(ctx, "a.csv", "", testRawTable(1))
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	// Force distinct timestamps.
	if _, err := store.db.ExecContext(ctx, `UPDATE snapshots SET created_at = ? WHERE id = ?`,
		time.Now().Add(-time.Hour).UTC(), first.ID); err != nil {
		t.Fatalf("failed to backdate snapshot: %v", err)
	}
	second, err := store.SaveSnapshot(ctx, "b.csv", "", testRawTable(2))
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	list, err = store.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListSnapshots() = %d snapshots, want 2", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("ListSnapshots() order = [%s %s], want [%s %s]", list[0].ID, list[1].ID, second.ID, first.ID)
	}
	if list[0].SourceID() != "snapshot:"+second.ID {
		t.Errorf("SourceID() = %q", list[0].SourceID())
	}
}

func TestSnapshot_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.GetSnapshot(ctx, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetSnapshot() error = %v, want ErrNotFound", err)
	}
	if _, err := store.SnapshotData(ctx, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("SnapshotData() error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteSnapshot(ctx, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("DeleteSnapshot() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteSnapshot_RemovesRows(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	snap, err := store.SaveSnapshot(ctx, "a.csv", "", testRawTable(4))
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	if err := store.DeleteSnapshot(ctx, snap.ID); err != nil {
		t.Fatalf("DeleteSnapshot() error = %v", err)
	}

	var rows int
	if err := store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshot_rows WHERE snapshot_id = ?`, snap.ID).Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 0 {
		t.Errorf("%d rows left after delete", rows)
	}
}

func TestSaveSnapshot_Invalid(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.SaveSnapshot(ctx, "", "", testRawTable(1)); !errors.Is(err, ErrEmptyString) {
		t.Errorf("empty source: error = %v", err)
	}
	raw := testRawTable(1)
	raw.Rows = nil
	if _, err := store.SaveSnapshot(ctx, "a.csv", "", raw); !errors.Is(err, ErrEmptySlice) {
		t.Errorf("no rows: error = %v", err)
	}

	list, err := store.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("invalid imports left %d snapshots", len(list))
	}
}
