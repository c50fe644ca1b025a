package app

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
	"github.com/avyukd/bobo-notes/internal/notes/ports/repositories"
	"github.com/avyukd/bobo-notes/pkg/logger"
)

// TagUseCase управляет метками и их привязкой к заметкам.
type TagUseCase struct {
	tags  repositories.TagRepository
	notes repositories.NoteRepository
	uow   repositories.UnitOfWork
}

// NewTagUseCase создает новый экземпляр TagUseCase.
func NewTagUseCase(
	tags repositories.TagRepository,
	notes repositories.NoteRepository,
	uow repositories.UnitOfWork,
) *TagUseCase {
	return &TagUseCase{tags: tags, notes: notes, uow: uow}
}

// CreateTag возвращает метку с таким именем, создавая ее при необходимости.
func (uc *TagUseCase) CreateTag(ctx context.Context, name string) (*entities.Tag, error) {
	if err := validateTagName(name); err != nil {
		return nil, err
	}

	tag, err := uc.tags.GetOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// ListTags возвращает все метки по алфавиту.
func (uc *TagUseCase) ListTags(ctx context.Context) ([]*entities.Tag, error) {
	tags, err := uc.tags.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// TagNote привязывает к заметке метку с именем name. Повторная привязка не ошибка.
func (uc *TagUseCase) TagNote(ctx context.Context, noteID uuid.UUID, name string) (*entities.Tag, error) {
	if err := validateTagName(name); err != nil {
		return nil, err
	}

	var (
		tag        *entities.Tag
		attachedAt time.Time
	)
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		if err := ensureNote(ctx, repos.Notes(), noteID); err != nil {
			return err
		}

		t, err := repos.Tags().GetOrCreate(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to get tag: %w", err)
		}

		link, err := repos.Tags().AttachToNote(ctx, noteID, t.ID)
		if err != nil {
			if isReferenceNotFound(err) {
				return ErrNoteNotFound
			}
			return fmt.Errorf("failed to attach tag: %w", err)
		}

		tag, attachedAt = t, link.CreatedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, "tag attached",
		zap.String("method", "TagUseCase.TagNote"),
		zap.Stringer("noteID", noteID),
		zap.Stringer("tagID", tag.ID),
		zap.Time("attachedAt", attachedAt))
	return tag, nil
}

// ListNoteTags возвращает метки заметки.
func (uc *TagUseCase) ListNoteTags(ctx context.Context, noteID uuid.UUID) ([]*entities.Tag, error) {
	if err := ensureNote(ctx, uc.notes, noteID); err != nil {
		return nil, err
	}

	tags, err := uc.tags.ListForNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list note tags: %w", err)
	}
	return tags, nil
}

func validateTagName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 1 || n > entities.MaxTagNameLength {
		return invalidParams("tag name must be between 1 and %d characters", entities.MaxTagNameLength)
	}
	return nil
}
