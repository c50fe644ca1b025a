// Package cache определяет интерфейс кеша заметок.
package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
)

// Version поколение записи заметки в кеше. Каждый Invalidate его меняет.
type Version int64

// NoteCache хранит полностью загруженные заметки по ID.
// Промах возвращает nil без ошибки вместе с текущим поколением ключа.
type NoteCache interface {
	Get(ctx context.Context, id uuid.UUID) (*entities.Note, Version, error)

	// Set сохраняет заметку, только если поколение ключа все еще равно seen,
	// иначе ничего не пишет.
	Set(ctx context.Context, note *entities.Note, seen Version) error

	Invalidate(ctx context.Context, id uuid.UUID) error

	Close() error
}
