package app

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
	"github.com/avyukd/bobo-notes/internal/notes/ports/cache"
	"github.com/avyukd/bobo-notes/internal/notes/ports/repositories"
	"github.com/avyukd/bobo-notes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogCacheHit         = "note served from cache"
	LogCacheReadFailed  = "note cache read failed"
	LogCacheWriteFailed = "note cache write failed"
	LogCacheDropFailed  = "note cache invalidation failed"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	notes repositories.NoteRepository
	cache cache.NoteCache
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(notes repositories.NoteRepository, noteCache cache.NoteCache) *NoteUseCase {
	return &NoteUseCase{
		notes: notes,
		cache: noteCache,
	}
}

// ListNotes возвращает не более limit заметок, новые первыми.
func (uc *NoteUseCase) ListNotes(ctx context.Context, limit int) ([]*entities.Note, error) {
	if limit < 1 || limit > MaxNoteLimit {
		return nil, invalidParams("limit must be between 1 and %d", MaxNoteLimit)
	}

	notes, err := uc.notes.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// GetNote возвращает заметку по ID, сначала заглядывая в кеш.
// Ошибки кеша не прерывают запрос; после ошибки чтения кеш не заполняется.
func (uc *NoteUseCase) GetNote(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.GetNote"), zap.Stringer("noteID", id))

	cached, version, cacheErr := uc.cache.Get(ctx, id)
	if cacheErr != nil {
		log.Warn(ctx, LogCacheReadFailed, zap.Error(cacheErr))
	}
	if cached != nil {
		log.Debug(ctx, LogCacheHit)
		return cached, nil
	}

	note, err := uc.notes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	// Поколение прочитано до запроса в хранилище: если заметку успели изменить,
	// Set ничего не запишет.
	if cacheErr == nil {
		if err := uc.cache.Set(ctx, note, version); err != nil {
			log.Warn(ctx, LogCacheWriteFailed, zap.Error(err))
		}
	}
	return note, nil
}

// CreateNote создает заметку с содержимым по ее типу.
func (uc *NoteUseCase) CreateNote(ctx context.Context, title string, contentType string, body *string) (*entities.Note, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	ct, err := entities.ParseContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	note, err := uc.notes.Create(ctx, title, ct, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// UpdateNote применяет частичное обновление.
// Пустое обновление ничего не пишет и возвращает текущую заметку.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, id uuid.UUID, update entities.NoteUpdate) (*entities.Note, error) {
	if update.IsEmpty() {
		return uc.GetNote(ctx, id)
	}
	if update.Title != nil {
		if err := validateTitle(*update.Title); err != nil {
			return nil, err
		}
	}
	if update.ContentType != nil {
		ct, err := entities.ParseContentType(string(*update.ContentType))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
		update.ContentType = &ct
	}

	note, err := uc.notes.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	uc.invalidate(ctx, id)
	return note, nil
}

// DeleteNote удаляет заметку вместе с содержимым, метками и связями.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, id uuid.UUID) error {
	deleted, err := uc.notes.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if !deleted {
		return ErrNoteNotFound
	}

	uc.invalidate(ctx, id)
	return nil
}

// AddRow добавляет строку в табличную заметку.
func (uc *NoteUseCase) AddRow(ctx context.Context, noteID uuid.UUID, rowData entities.JSONObject) (*entities.TableRow, error) {
	row, err := uc.notes.AddRow(ctx, noteID, rowData)
	if err != nil {
		return nil, fmt.Errorf("failed to add row: %w", err)
	}
	if row == nil {
		if err := uc.ensureNote(ctx, noteID); err != nil {
			return nil, err
		}
		return nil, invalidParams("note %s has no table content", noteID)
	}

	uc.invalidate(ctx, noteID)
	return row, nil
}

// ListRows возвращает строки табличной заметки.
func (uc *NoteUseCase) ListRows(ctx context.Context, noteID uuid.UUID) ([]*entities.TableRow, error) {
	if err := uc.ensureNote(ctx, noteID); err != nil {
		return nil, err
	}

	rows, err := uc.notes.ListRows(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", err)
	}
	return rows, nil
}

func (uc *NoteUseCase) ensureNote(ctx context.Context, id uuid.UUID) error {
	return ensureNote(ctx, uc.notes, id)
}

func (uc *NoteUseCase) invalidate(ctx context.Context, id uuid.UUID) {
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		logger.Log(ctx).Warn(ctx, LogCacheDropFailed, zap.Stringer("noteID", id), zap.Error(err))
	}
}

func ensureNote(ctx context.Context, notes repositories.NoteRepository, id uuid.UUID) error {
	note, err := notes.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return ErrNoteNotFound
	}
	return nil
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(title) > entities.MaxTitleLength {
		return invalidParams("title must be at most %d characters", entities.MaxTitleLength)
	}
	return nil
}

func isReferenceNotFound(err error) bool {
	return errors.Is(err, repositories.ErrReferenceNotFound)
}
