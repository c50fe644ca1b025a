package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
	"github.com/avyukd/bobo-notes/internal/notes/ports/cache"
)

// NoopNoteCache используется, когда Redis выключен.
type NoopNoteCache struct{}

var _ cache.NoteCache = NoopNoteCache{}

// Get всегда промахивается.
func (NoopNoteCache) Get(context.Context, uuid.UUID) (*entities.Note, cache.Version, error) {
	return nil, 0, nil
}

// Set ничего не делает.
func (NoopNoteCache) Set(context.Context, *entities.Note, cache.Version) error { return nil }

// Invalidate ничего не делает.
func (NoopNoteCache) Invalidate(context.Context, uuid.UUID) error { return nil }

// Close ничего не делает.
func (NoopNoteCache) Close() error { return nil }
