package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
	"github.com/avyukd/bobo-notes/internal/notes/ports/repositories"
	"github.com/avyukd/bobo-notes/pkg/logger"
)

// LinkRepository реализует repositories.LinkRepository.
type LinkRepository struct {
	db Querier
}

// NewLinkRepository создает новый репозиторий связей.
func NewLinkRepository(db Querier) repositories.LinkRepository {
	return &LinkRepository{db: db}
}

// Create сохраняет связь. Существование заметок проверяют только внешние ключи,
// ссылка заметки на саму себя допустима.
func (r *LinkRepository) Create(
	ctx context.Context,
	sourceID, targetID uuid.UUID,
	linkType entities.LinkType,
	contextExcerpt *string,
) (*entities.NoteLink, error) {
	log := logger.Log(ctx).With(zap.String("method", "LinkRepository.Create"))

	lt, err := entities.ParseLinkType(string(linkType))
	if err != nil {
		return nil, err
	}

	link := entities.NoteLink{
		SourceID:       sourceID,
		TargetID:       targetID,
		LinkType:       lt,
		ContextExcerpt: contextExcerpt,
	}
	err = r.db.QueryRow(ctx,
		`INSERT INTO note_links (source_id, target_id, link_type, context_excerpt)
         VALUES ($1, $2, $3::note_link_type, $4)
         RETURNING id, created_at, updated_at`,
		sourceID, targetID, string(lt), contextExcerpt,
	).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Debug(ctx, "link endpoint does not exist", zap.Error(err))
			return nil, fmt.Errorf("failed to create link: %w", repositories.ErrReferenceNotFound)
		}
		log.Error(ctx, "failed to create link", zap.Error(err))
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	log.Debug(ctx, "link created", zap.Stringer("linkID", link.ID))
	return &link, nil
}

// ListForNote возвращает исходящие и входящие связи заметки, новые первыми.
func (r *LinkRepository) ListForNote(ctx context.Context, noteID uuid.UUID) ([]*entities.NoteLink, error) {
	log := logger.Log(ctx).With(zap.String("method", "LinkRepository.ListForNote"))

	rows, err := r.db.Query(ctx,
		`SELECT id, source_id, target_id, link_type::text, context_excerpt, created_at, updated_at
         FROM note_links
         WHERE source_id = $1 OR target_id = $1
         ORDER BY created_at DESC`,
		noteID,
	)
	if err != nil {
		log.Error(ctx, "failed to list links", zap.Error(err))
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	links := make([]*entities.NoteLink, 0)
	for rows.Next() {
		var (
			link     entities.NoteLink
			linkType string
		)
		if err := rows.Scan(&link.ID, &link.SourceID, &link.TargetID, &linkType,
			&link.ContextExcerpt, &link.CreatedAt, &link.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		link.LinkType = entities.LinkType(linkType)
		links = append(links, &link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return links, nil
}
