package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
	"github.com/avyukd/bobo-notes/internal/notes/ports/repositories"
	"github.com/avyukd/bobo-notes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogOrganizingDraft = "organizing draft into note"
	LogDraftOrganized  = "draft organized into note"
)

// OrganizeService превращает черновик в markdown-заметку.
type OrganizeService struct {
	uow repositories.UnitOfWork
}

// NewOrganizeService создает новый экземпляр OrganizeService.
func NewOrganizeService(uow repositories.UnitOfWork) *OrganizeService {
	return &OrganizeService{uow: uow}
}

// OrganizeDraft создает заметку из черновика и удаляет черновик.
// Оба шага выполняются в одной транзакции: при любой ошибке черновик остается,
// а заметка не создается.
func (s *OrganizeService) OrganizeDraft(ctx context.Context, draftID uuid.UUID) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "OrganizeService.OrganizeDraft"), zap.Stringer("draftID", draftID))
	log.Info(ctx, LogOrganizingDraft)

	var note *entities.Note
	err := s.uow.Do(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		draft, err := repos.Drafts().Get(ctx, draftID)
		if err != nil {
			return fmt.Errorf("failed to get draft: %w", err)
		}
		if draft == nil {
			return ErrDraftNotFound
		}

		body := draft.NoteBody()
		created, err := repos.Notes().Create(ctx, draft.NoteTitle(), entities.ContentTypeMarkdown, &body)
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}

		if _, err := repos.Drafts().Delete(ctx, draftID); err != nil {
			return fmt.Errorf("failed to delete draft: %w", err)
		}

		note = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(ctx, LogDraftOrganized, zap.Stringer("noteID", note.ID))
	return note, nil
}
