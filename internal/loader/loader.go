package loader

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/config"
	"github.com/Veraticus/app-strategy/internal/model"
	"golang.org/x/sync/singleflight"
)

// SnapshotSource reads stored snapshots.
type SnapshotSource interface {
	SnapshotData(ctx context.Context, id string) (model.RawTable, error)
}

// Loader loads category tables by source id. Each id is loaded at most once
// per process; concurrent callers for the same id share one load.
type Loader struct {
	snapshots SnapshotSource
	cache     map[string]*model.Table
	group     singleflight.Group
	mu        sync.RWMutex
}

// New creates a loader. snapshots may be nil, in which case snapshot source
// ids fail with common.ErrDataUnavailable.
func New(snapshots SnapshotSource) *Loader {
	return &Loader{
		snapshots: snapshots,
		cache:     make(map[string]*model.Table),
	}
}

// Load returns the table for sourceID, a file path or "snapshot:<id>".
// A failed load is not cached.
func (l *Loader) Load(ctx context.Context, sourceID string) (*model.Table, error) {
	key := strings.TrimSpace(sourceID)
	if key == "" {
		return nil, fmt.Errorf("%w: empty source id", common.ErrDataUnavailable)
	}

	if t, ok := l.cached(key); ok {
		return t, nil
	}

	v, err, shared := l.group.Do(key, func() (any, error) {
		if t, ok := l.cached(key); ok {
			return t, nil
		}

		t, err := l.load(ctx, key)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.cache[key] = t
		l.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("Shared in-flight load", "source", key)
	}

	return v.(*model.Table), nil
}

// Forget drops a cached table so the next Load reads the source again.
func (l *Loader) Forget(sourceID string) {
	l.mu.Lock()
	delete(l.cache, strings.TrimSpace(sourceID))
	l.mu.Unlock()
}

func (l *Loader) cached(key string) (*model.Table, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.cache[key]
	return t, ok
}

func (l *Loader) load(ctx context.Context, key string) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw model.RawTable
	if id, ok := strings.CutPrefix(key, model.SnapshotPrefix); ok {
		if l.snapshots == nil {
			return nil, fmt.Errorf("%w: %s: snapshot store not configured", common.ErrDataUnavailable, key)
		}
		data, err := l.snapshots.SnapshotData(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrDataUnavailable, key, err)
		}
		raw = data
	} else {
		data, err := ReadFile(config.ExpandPath(key))
		if err != nil {
			return nil, err
		}
		raw = data
	}

	t, err := Parse(key, raw)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded category table",
		"source", key,
		"rows", t.Len(),
		"extra_columns", len(t.ExtraColumns()),
		"missing_optional", MissingOptional(t))

	return t, nil
}
