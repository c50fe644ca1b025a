// Package app содержит бизнес-логику сервиса заметок.
package app

import (
	"errors"
	"fmt"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound      = errors.New("not found")
	ErrNoteNotFound  = fmt.Errorf("note %w", ErrNotFound)
	ErrDraftNotFound = fmt.Errorf("draft %w", ErrNotFound)
	ErrInvalidParams = errors.New("invalid parameters")
)

// Ограничения выборки заметок.
const (
	DefaultNoteLimit = 50
	MaxNoteLimit     = 200
)

func invalidParams(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}
