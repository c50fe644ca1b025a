package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
)

// LinkRepository хранилище связей между заметками.
type LinkRepository interface {
	Create(ctx context.Context, sourceID, targetID uuid.UUID, linkType entities.LinkType, contextExcerpt *string) (*entities.NoteLink, error)
	ListForNote(ctx context.Context, noteID uuid.UUID) ([]*entities.NoteLink, error)
}
