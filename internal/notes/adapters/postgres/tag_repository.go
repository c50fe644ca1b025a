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

const selectTagByNameSQL = `SELECT id, name, created_at, updated_at FROM tags WHERE name = $1`

// TagRepository реализует repositories.TagRepository.
type TagRepository struct {
	db Querier
}

// NewTagRepository создает новый репозиторий меток.
func NewTagRepository(db Querier) repositories.TagRepository {
	return &TagRepository{db: db}
}

func scanTag(row rowScanner) (*entities.Tag, error) {
	var tag entities.Tag
	if err := row.Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) findByName(ctx context.Context, name string) (*entities.Tag, error) {
	tag, err := scanTag(r.db.QueryRow(ctx, selectTagByNameSQL, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tag, nil
}

// GetOrCreate возвращает метку по имени, создавая ее при отсутствии.
// Если параллельная вставка успела раньше, неудачная вставка откатывается
// и метка перечитывается.
func (r *TagRepository) GetOrCreate(ctx context.Context, name string) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.GetOrCreate"), zap.String("name", name))

	tag, err := r.findByName(ctx, name)
	if err != nil {
		log.Error(ctx, "failed to find tag", zap.Error(err))
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	if tag != nil {
		return tag, nil
	}

	err = inTx(ctx, r.db, func(q Querier) error {
		created, err := scanTag(q.QueryRow(ctx,
			`INSERT INTO tags (name) VALUES ($1) RETURNING id, name, created_at, updated_at`,
			name,
		))
		if err != nil {
			return err
		}
		tag = created
		return nil
	})
	if err == nil {
		log.Debug(ctx, "tag created", zap.Stringer("tagID", tag.ID))
		return tag, nil
	}

	if !isUniqueViolation(err) {
		log.Error(ctx, "failed to create tag", zap.Error(err))
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	log.Debug(ctx, "tag created concurrently, re-reading")
	tag, err = r.findByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read tag: %w", err)
	}
	if tag == nil {
		return nil, fmt.Errorf("failed to re-read tag: %w", pgx.ErrNoRows)
	}
	return tag, nil
}

func (r *TagRepository) listTags(ctx context.Context, query string, args ...any) ([]*entities.Tag, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]*entities.Tag, 0)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// ListAll возвращает все метки по алфавиту.
func (r *TagRepository) ListAll(ctx context.Context) ([]*entities.Tag, error) {
	tags, err := r.listTags(ctx, `SELECT id, name, created_at, updated_at FROM tags ORDER BY name ASC`)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to list tags", zap.Error(err))
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// AttachToNote связывает метку с заметкой и возвращает связь.
// Повторная связь не ошибка: возвращается существующая запись.
func (r *TagRepository) AttachToNote(ctx context.Context, noteID, tagID uuid.UUID) (*entities.NoteTag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.AttachToNote"))

	var link entities.NoteTag
	err := r.db.QueryRow(ctx,
		`WITH inserted AS (
             INSERT INTO note_tags (note_id, tag_id) VALUES ($1, $2)
             ON CONFLICT (note_id, tag_id) DO NOTHING
             RETURNING note_id, tag_id, created_at, updated_at
         )
         SELECT note_id, tag_id, created_at, updated_at FROM inserted
         UNION ALL
         SELECT note_id, tag_id, created_at, updated_at FROM note_tags
         WHERE note_id = $1 AND tag_id = $2
         LIMIT 1`,
		noteID, tagID,
	).Scan(&link.NoteID, &link.TagID, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("failed to attach tag: %w", repositories.ErrReferenceNotFound)
		}
		log.Error(ctx, "failed to attach tag", zap.Error(err))
		return nil, fmt.Errorf("failed to attach tag: %w", err)
	}
	return &link, nil
}

// ListForNote возвращает метки заметки по алфавиту.
func (r *TagRepository) ListForNote(ctx context.Context, noteID uuid.UUID) ([]*entities.Tag, error) {
	tags, err := r.listTags(ctx,
		`SELECT t.id, t.name, t.created_at, t.updated_at
         FROM tags t
         JOIN note_tags nt ON nt.tag_id = t.id
         WHERE nt.note_id = $1
         ORDER BY t.name ASC`,
		noteID,
	)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to list note tags", zap.Error(err))
		return nil, fmt.Errorf("failed to list note tags: %w", err)
	}
	return tags, nil
}
