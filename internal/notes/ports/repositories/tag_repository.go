package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
)

// TagRepository хранилище меток.
type TagRepository interface {
	// GetOrCreate возвращает метку с именем name, создавая ее при отсутствии.
	// Гонка двух вставок одного имени не приводит к ошибке.
	GetOrCreate(ctx context.Context, name string) (*entities.Tag, error)
	ListAll(ctx context.Context) ([]*entities.Tag, error)
	AttachToNote(ctx context.Context, noteID, tagID uuid.UUID) (*entities.NoteTag, error)
	ListForNote(ctx context.Context, noteID uuid.UUID) ([]*entities.Tag, error)
}
