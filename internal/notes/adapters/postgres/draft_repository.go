package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
	"github.com/avyukd/bobo-notes/internal/notes/ports/repositories"
	"github.com/avyukd/bobo-notes/pkg/logger"
)

const draftColumns = `id, title, body, editor_state, metadata, created_at, updated_at`

// DraftRepository реализует repositories.DraftRepository.
type DraftRepository struct {
	db Querier
}

// NewDraftRepository создает новый репозиторий черновиков.
func NewDraftRepository(db Querier) repositories.DraftRepository {
	return &DraftRepository{db: db}
}

func scanDraft(row rowScanner) (*entities.Draft, error) {
	var d entities.Draft
	if err := row.Scan(&d.ID, &d.Title, &d.Body, &d.EditorState, &d.Metadata, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if d.EditorState == nil {
		d.EditorState = entities.EmptyJSONObject()
	}
	if d.Metadata == nil {
		d.Metadata = entities.EmptyJSONObject()
	}
	return &d, nil
}

// List возвращает все черновики, новые первыми.
func (r *DraftRepository) List(ctx context.Context) ([]*entities.Draft, error) {
	log := logger.Log(ctx).With(zap.String("method", "DraftRepository.List"))

	rows, err := r.db.Query(ctx, `SELECT `+draftColumns+` FROM drafts ORDER BY created_at DESC`)
	if err != nil {
		log.Error(ctx, "failed to list drafts", zap.Error(err))
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]*entities.Draft, 0)
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			log.Error(ctx, "failed to scan draft", zap.Error(err))
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return drafts, nil
}

// Get возвращает черновик по ID или nil.
func (r *DraftRepository) Get(ctx context.Context, id uuid.UUID) (*entities.Draft, error) {
	log := logger.Log(ctx).With(zap.String("method", "DraftRepository.Get"))

	d, err := scanDraft(r.db.QueryRow(ctx, `SELECT `+draftColumns+` FROM drafts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "draft not found", zap.Stringer("draftID", id))
			return nil, nil
		}
		log.Error(ctx, "failed to get draft", zap.Error(err))
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return d, nil
}

// Create сохраняет новый черновик с пустыми editor_state и metadata.
func (r *DraftRepository) Create(ctx context.Context, title, body *string) (*entities.Draft, error) {
	log := logger.Log(ctx).With(zap.String("method", "DraftRepository.Create"))
	log.Debug(ctx, "creating new draft")

	d, err := scanDraft(r.db.QueryRow(ctx,
		`INSERT INTO drafts (title, body) VALUES ($1, $2) RETURNING `+draftColumns,
		title, body,
	))
	if err != nil {
		log.Error(ctx, "failed to create draft", zap.Error(err))
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	log.Debug(ctx, "draft created", zap.Stringer("draftID", d.ID))
	return d, nil
}

// Delete удаляет черновик и сообщает, существовал ли он.
func (r *DraftRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "DraftRepository.Delete"))

	result, err := r.db.Exec(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "failed to delete draft", zap.Error(err))
		return false, fmt.Errorf("failed to delete draft: %w", err)
	}

	deleted := result.RowsAffected() > 0
	log.Debug(ctx, "draft delete finished", zap.Stringer("draftID", id), zap.Bool("deleted", deleted))
	return deleted, nil
}
