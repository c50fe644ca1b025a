package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
	"github.com/avyukd/bobo-notes/internal/notes/ports/repositories"
)

// LinkUseCase управляет связями между заметками.
type LinkUseCase struct {
	links repositories.LinkRepository
	notes repositories.NoteRepository
}

// NewLinkUseCase создает новый экземпляр LinkUseCase.
func NewLinkUseCase(links repositories.LinkRepository, notes repositories.NoteRepository) *LinkUseCase {
	return &LinkUseCase{links: links, notes: notes}
}

// CreateLink связывает две заметки. Пустой linkType означает explicit.
func (uc *LinkUseCase) CreateLink(
	ctx context.Context,
	sourceID, targetID uuid.UUID,
	linkType string,
	contextExcerpt *string,
) (*entities.NoteLink, error) {
	lt := entities.LinkTypeExplicit
	if linkType != "" {
		parsed, err := entities.ParseLinkType(linkType)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
		lt = parsed
	}

	link, err := uc.links.Create(ctx, sourceID, targetID, lt, contextExcerpt)
	if err != nil {
		if isReferenceNotFound(err) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return link, nil
}

// ListLinks возвращает входящие и исходящие связи заметки.
func (uc *LinkUseCase) ListLinks(ctx context.Context, noteID uuid.UUID) ([]*entities.NoteLink, error) {
	if err := ensureNote(ctx, uc.notes, noteID); err != nil {
		return nil, err
	}

	links, err := uc.links.ListForNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}
