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

// DraftUseCase управляет черновиками.
type DraftUseCase struct {
	drafts repositories.DraftRepository
}

// NewDraftUseCase создает новый экземпляр DraftUseCase.
func NewDraftUseCase(drafts repositories.DraftRepository) *DraftUseCase {
	return &DraftUseCase{drafts: drafts}
}

// ListDrafts возвращает все черновики, новые первыми.
func (uc *DraftUseCase) ListDrafts(ctx context.Context) ([]*entities.Draft, error) {
	drafts, err := uc.drafts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// GetDraft возвращает черновик по ID.
func (uc *DraftUseCase) GetDraft(ctx context.Context, id uuid.UUID) (*entities.Draft, error) {
	draft, err := uc.drafts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

// CreateDraft сохраняет черновик. Оба поля необязательны.
func (uc *DraftUseCase) CreateDraft(ctx context.Context, title, body *string) (*entities.Draft, error) {
	draft, err := uc.drafts.Create(ctx, title, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	logger.Log(ctx).Debug(ctx, "draft created",
		zap.String("method", "DraftUseCase.CreateDraft"),
		zap.Stringer("draftID", draft.ID))
	return draft, nil
}

// DeleteDraft удаляет черновик.
func (uc *DraftUseCase) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	deleted, err := uc.drafts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if !deleted {
		return ErrDraftNotFound
	}
	return nil
}
