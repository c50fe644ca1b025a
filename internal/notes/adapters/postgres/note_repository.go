package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
	"github.com/avyukd/bobo-notes/internal/notes/ports/repositories"
	"github.com/avyukd/bobo-notes/pkg/logger"
)

// selectNoteSQL выбирает заметку вместе с текстом и таблицей одним запросом.
const selectNoteSQL = `
        SELECT n.id, n.title, n.content_type::text, n.archived, n.created_at, n.updated_at,
               tc.id, tc.body, tc.embedding, tc.created_at, tc.updated_at,
               tb.id, tb.schema_json, tb.row_count, tb.created_at, tb.updated_at
        FROM notes n
        LEFT JOIN text_contents tc ON tc.note_id = n.id
        LEFT JOIN table_contents tb ON tb.note_id = n.id`

const tableRowColumns = `id, table_note_id, row_data, embedding, created_at, updated_at`

var errNoTableContent = errors.New("note has no table content")

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	db Querier
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(db Querier) repositories.NoteRepository {
	return &NoteRepository{db: db}
}

func scanNote(row rowScanner) (*entities.Note, error) {
	var (
		note        entities.Note
		contentType string

		textID        *uuid.UUID
		textBody      *string
		textEmbedding entities.JSONObject
		textCreated   *time.Time
		textUpdated   *time.Time

		tableID      *uuid.UUID
		tableSchema  entities.JSONObject
		tableRows    *int
		tableCreated *time.Time
		tableUpdated *time.Time
	)

	err := row.Scan(
		&note.ID, &note.Title, &contentType, &note.Archived, &note.CreatedAt, &note.UpdatedAt,
		&textID, &textBody, &textEmbedding, &textCreated, &textUpdated,
		&tableID, &tableSchema, &tableRows, &tableCreated, &tableUpdated,
	)
	if err != nil {
		return nil, err
	}
	note.ContentType = entities.ContentType(contentType)

	if textID != nil {
		note.TextContent = &entities.TextContent{
			BaseRecord: entities.BaseRecord{ID: *textID, CreatedAt: deref(textCreated), UpdatedAt: deref(textUpdated)},
			NoteID:     note.ID,
			Body:       deref(textBody),
			Embedding:  textEmbedding,
		}
	}

	if tableID != nil {
		if tableSchema == nil {
			tableSchema = entities.EmptyJSONObject()
		}
		note.TableContent = &entities.TableContent{
			BaseRecord: entities.BaseRecord{ID: *tableID, CreatedAt: deref(tableCreated), UpdatedAt: deref(tableUpdated)},
			NoteID:     note.ID,
			SchemaJSON: tableSchema,
			RowCount:   deref(tableRows),
		}
	}

	return &note, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func getNote(ctx context.Context, q Querier, id uuid.UUID) (*entities.Note, error) {
	note, err := scanNote(q.QueryRow(ctx, selectNoteSQL+` WHERE n.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return note, nil
}

// List возвращает не более limit заметок, новые первыми, с загруженным содержимым.
func (r *NoteRepository) List(ctx context.Context, limit int) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes", zap.Int("limit", limit))

	rows, err := r.db.Query(ctx, selectNoteSQL+` ORDER BY n.created_at DESC LIMIT $1`, limit)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// Get получает заметку по ID или nil, если ее нет.
func (r *NoteRepository) Get(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Get"))

	note, err := getNote(ctx, r.db, id)
	if err != nil {
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		log.Debug(ctx, "note not found", zap.Stringer("noteID", id))
	}
	return note, nil
}

// Create сохраняет заметку и ее содержимое в одной транзакции.
// Markdown-заметка получает текст (пустой, если body не передан),
// табличная заметка получает пустую таблицу.
func (r *NoteRepository) Create(ctx context.Context, title string, contentType entities.ContentType, body *string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))

	ct, err := entities.ParseContentType(string(contentType))
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "creating new note", zap.String("contentType", string(ct)))

	var note *entities.Note
	err = inTx(ctx, r.db, func(q Querier) error {
		var noteID uuid.UUID
		if err := q.QueryRow(ctx,
			`INSERT INTO notes (title, content_type) VALUES ($1, $2::note_content_type) RETURNING id`,
			title, string(ct),
		).Scan(&noteID); err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		switch ct {
		case entities.ContentTypeMarkdown:
			if _, err := q.Exec(ctx,
				`INSERT INTO text_contents (note_id, body) VALUES ($1, $2)`,
				noteID, deref(body),
			); err != nil {
				return fmt.Errorf("failed to insert text content: %w", err)
			}
		case entities.ContentTypeTable:
			if _, err := q.Exec(ctx,
				`INSERT INTO table_contents (note_id, schema_json, row_count) VALUES ($1, '{}'::jsonb, 0)`,
				noteID,
			); err != nil {
				return fmt.Errorf("failed to insert table content: %w", err)
			}
		}

		created, err := getNote(ctx, q, noteID)
		if err != nil {
			return fmt.Errorf("failed to reload note: %w", err)
		}
		note = created
		return nil
	})
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.Stringer("noteID", note.ID))
	return note, nil
}

// Update применяет частичное обновление к заметке.
// Body со значением создает или перезаписывает текст; body: null очищает
// существующий текст до пустой строки, не удаляя его.
func (r *NoteRepository) Update(ctx context.Context, id uuid.UUID, update entities.NoteUpdate) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.Stringer("noteID", id))

	var contentType *string
	if update.ContentType != nil {
		ct, err := entities.ParseContentType(string(*update.ContentType))
		if err != nil {
			return nil, err
		}
		s := string(ct)
		contentType = &s
	}

	var note *entities.Note
	err := inTx(ctx, r.db, func(q Querier) error {
		current, err := getNote(ctx, q, id)
		if err != nil {
			return fmt.Errorf("failed to load note: %w", err)
		}
		if current == nil {
			return nil
		}

		if _, err := q.Exec(ctx,
			`UPDATE notes
             SET title = COALESCE($2, title),
                 content_type = COALESCE($3::note_content_type, content_type),
                 archived = COALESCE($4, archived),
                 updated_at = now()
             WHERE id = $1`,
			id, update.Title, contentType, update.Archived,
		); err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		if update.Body.Set {
			if err := applyBody(ctx, q, current, update.Body.Value); err != nil {
				return err
			}
		}

		note, err = getNote(ctx, q, id)
		if err != nil {
			return fmt.Errorf("failed to reload note: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	if note == nil {
		log.Debug(ctx, "note not found", zap.Stringer("noteID", id))
	}
	return note, nil
}

func applyBody(ctx context.Context, q Querier, current *entities.Note, body *string) error {
	switch {
	case body != nil && current.TextContent == nil:
		if _, err := q.Exec(ctx,
			`INSERT INTO text_contents (note_id, body) VALUES ($1, $2)`,
			current.ID, *body,
		); err != nil {
			return fmt.Errorf("failed to insert text content: %w", err)
		}
	case current.TextContent != nil:
		if _, err := q.Exec(ctx,
			`UPDATE text_contents SET body = $2, updated_at = now() WHERE note_id = $1`,
			current.ID, deref(body),
		); err != nil {
			return fmt.Errorf("failed to update text content: %w", err)
		}
	}
	return nil
}

// Delete удаляет заметку; дочерние записи удаляются каскадом внешних ключей.
func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.Stringer("noteID", id))

	result, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return false, fmt.Errorf("failed to delete note: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func scanTableRow(row rowScanner) (*entities.TableRow, error) {
	var tr entities.TableRow
	if err := row.Scan(&tr.ID, &tr.TableNoteID, &tr.RowData, &tr.Embedding, &tr.CreatedAt, &tr.UpdatedAt); err != nil {
		return nil, err
	}
	if tr.RowData == nil {
		tr.RowData = entities.EmptyJSONObject()
	}
	return &tr, nil
}

// AddRow добавляет строку в таблицу заметки и увеличивает row_count.
func (r *NoteRepository) AddRow(ctx context.Context, noteID uuid.UUID, rowData entities.JSONObject) (*entities.TableRow, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.AddRow"))

	if rowData == nil {
		rowData = entities.EmptyJSONObject()
	}

	var tableRow *entities.TableRow
	err := inTx(ctx, r.db, func(q Querier) error {
		result, err := q.Exec(ctx,
			`UPDATE table_contents SET row_count = row_count + 1, updated_at = now() WHERE note_id = $1`,
			noteID,
		)
		if err != nil {
			return fmt.Errorf("failed to bump row count: %w", err)
		}
		if result.RowsAffected() == 0 {
			return errNoTableContent
		}

		tableRow, err = scanTableRow(q.QueryRow(ctx,
			`INSERT INTO table_rows (table_note_id, row_data) VALUES ($1, $2) RETURNING `+tableRowColumns,
			noteID, rowData,
		))
		if err != nil {
			return fmt.Errorf("failed to insert table row: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errNoTableContent) {
			log.Debug(ctx, "note has no table content", zap.Stringer("noteID", noteID))
			return nil, nil
		}
		log.Error(ctx, "failed to add table row", zap.Error(err))
		return nil, fmt.Errorf("failed to add table row: %w", err)
	}

	return tableRow, nil
}

// ListRows возвращает строки таблицы заметки в порядке добавления.
func (r *NoteRepository) ListRows(ctx context.Context, noteID uuid.UUID) ([]*entities.TableRow, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListRows"))

	rows, err := r.db.Query(ctx,
		`SELECT `+tableRowColumns+` FROM table_rows WHERE table_note_id = $1 ORDER BY created_at ASC`,
		noteID,
	)
	if err != nil {
		log.Error(ctx, "failed to list table rows", zap.Error(err))
		return nil, fmt.Errorf("failed to list table rows: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.TableRow, 0)
	for rows.Next() {
		tr, err := scanTableRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table row: %w", err)
		}
		result = append(result, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}
