package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/outbreak/internal/deck/application"
	"github.com/zjrosen/outbreak/internal/deck/domain"
	"github.com/zjrosen/outbreak/internal/log"
)

var tracer = otel.Tracer("github.com/zjrosen/outbreak/internal/deck/infrastructure")

// FileSnapshotStore persists deck state as JSON snapshot files.
//
// Saves are write-then-rename so a concurrent reader sees either the old
// snapshot or the new one, never a truncated file. Loads go through a small
// parse cache keyed by file size and mtime; the watch view reloads on every
// filesystem event burst and would otherwise re-parse an unchanged file
// several times per save.
type FileSnapshotStore struct {
	parsed *cache.Cache
}

// Ensure FileSnapshotStore implements application.SnapshotStore.
var _ application.SnapshotStore = (*FileSnapshotStore)(nil)

type cachedSnapshot struct {
	state   *domain.DeckState
	size    int64
	modTime time.Time
}

// NewFileSnapshotStore creates a FileSnapshotStore.
func NewFileSnapshotStore() *FileSnapshotStore {
	return &FileSnapshotStore{
		parsed: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Load reads the snapshot at path. A missing file is the empty state; an
// unreadable or malformed file is an error. Callers own the returned state:
// it never aliases cache internals.
func (s *FileSnapshotStore) Load(ctx context.Context, path string) (*domain.DeckState, error) {
	_, span := tracer.Start(ctx, "snapshot.load")
	span.SetAttributes(attribute.String("snapshot.path", path))
	defer span.End()

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		log.Debug(log.CatStore, "no snapshot, starting empty", "path", path)
		return domain.NewDeckState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat snapshot %s: %w", path, err)
	}

	if hit, ok := s.parsed.Get(path); ok {
		cached := hit.(*cachedSnapshot)
		if cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
			return cached.state.Clone(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	state, err := DecodeSnapshot(data)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}

	s.parsed.Set(path, &cachedSnapshot{
		state:   state.Clone(),
		size:    info.Size(),
		modTime: info.ModTime(),
	}, cache.DefaultExpiration)

	log.Debug(log.CatStore, "loaded snapshot", "path", path, "segments", len(state.InfectionDecks), "discard", len(state.DiscardPile))
	return state, nil
}

// Save atomically replaces the snapshot at path: the new contents land in a
// temp file in the same directory, then rename into place.
func (s *FileSnapshotStore) Save(ctx context.Context, state *domain.DeckState, path string) error {
	_, span := tracer.Start(ctx, "snapshot.save")
	span.SetAttributes(attribute.String("snapshot.path", path))
	defer span.End()

	data, err := EncodeSnapshot(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp snapshot in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot %s: %w", path, err)
	}

	if info, err := os.Stat(path); err == nil {
		s.parsed.Set(path, &cachedSnapshot{
			state:   state.Clone(),
			size:    info.Size(),
			modTime: info.ModTime(),
		}, cache.DefaultExpiration)
	}

	log.Debug(log.CatStore, "saved snapshot", "path", path, "bytes", len(data))
	return nil
}
