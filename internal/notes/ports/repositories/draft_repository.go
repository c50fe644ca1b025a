package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
)

// DraftRepository хранилище черновиков.
type DraftRepository interface {
	List(ctx context.Context) ([]*entities.Draft, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Draft, error)
	Create(ctx context.Context, title, body *string) (*entities.Draft, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
