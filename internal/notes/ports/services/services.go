// Package services описывает сценарии сервиса заметок, доступные транспортам.
package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
)

// NoteService сценарии работы с заметками.
type NoteService interface {
	ListNotes(ctx context.Context, limit int) ([]*entities.Note, error)
	GetNote(ctx context.Context, id uuid.UUID) (*entities.Note, error)
	CreateNote(ctx context.Context, title string, contentType string, body *string) (*entities.Note, error)
	UpdateNote(ctx context.Context, id uuid.UUID, update entities.NoteUpdate) (*entities.Note, error)
	DeleteNote(ctx context.Context, id uuid.UUID) error
	AddRow(ctx context.Context, noteID uuid.UUID, rowData entities.JSONObject) (*entities.TableRow, error)
	ListRows(ctx context.Context, noteID uuid.UUID) ([]*entities.TableRow, error)
}

// DraftService сценарии работы с черновиками.
type DraftService interface {
	ListDrafts(ctx context.Context) ([]*entities.Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*entities.Draft, error)
	CreateDraft(ctx context.Context, title, body *string) (*entities.Draft, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
}

// TagService сценарии работы с метками.
type TagService interface {
	CreateTag(ctx context.Context, name string) (*entities.Tag, error)
	ListTags(ctx context.Context) ([]*entities.Tag, error)
	TagNote(ctx context.Context, noteID uuid.UUID, name string) (*entities.Tag, error)
	ListNoteTags(ctx context.Context, noteID uuid.UUID) ([]*entities.Tag, error)
}

// LinkService сценарии работы со связями.
type LinkService interface {
	CreateLink(ctx context.Context, sourceID, targetID uuid.UUID, linkType string, contextExcerpt *string) (*entities.NoteLink, error)
	ListLinks(ctx context.Context, noteID uuid.UUID) ([]*entities.NoteLink, error)
}

// DraftOrganizer превращает черновик в заметку.
type DraftOrganizer interface {
	OrganizeDraft(ctx context.Context, draftID uuid.UUID) (*entities.Note, error)
}
