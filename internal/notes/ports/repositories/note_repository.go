// Package repositories описывает порты хранилища сервиса заметок.
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
)

// ErrReferenceNotFound возвращается, когда запись ссылается на несуществующую заметку или метку.
var ErrReferenceNotFound = errors.New("referenced entity does not exist")

// NoteRepository хранилище заметок и их содержимого.
// Отсутствие заметки возвращается как nil без ошибки.
type NoteRepository interface {
	List(ctx context.Context, limit int) ([]*entities.Note, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Note, error)
	Create(ctx context.Context, title string, contentType entities.ContentType, body *string) (*entities.Note, error)
	Update(ctx context.Context, id uuid.UUID, update entities.NoteUpdate) (*entities.Note, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// AddRow добавляет строку в табличную заметку; nil, если у заметки нет таблицы.
	AddRow(ctx context.Context, noteID uuid.UUID, rowData entities.JSONObject) (*entities.TableRow, error)
	ListRows(ctx context.Context, noteID uuid.UUID) ([]*entities.TableRow, error)
}
