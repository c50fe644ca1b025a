package http_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
)

type mockNoteService struct{ mock.Mock }

func (m *mockNoteService) ListNotes(ctx context.Context, limit int) ([]*entities.Note, error) {
	args := m.Called(ctx, limit)
	notes, _ := args.Get(0).([]*entities.Note)
	return notes, args.Error(1)
}

func (m *mockNoteService) GetNote(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	args := m.Called(ctx, id)
	note, _ := args.Get(0).(*entities.Note)
	return note, args.Error(1)
}

func (m *mockNoteService) CreateNote(ctx context.Context, title string, contentType string, body *string) (*entities.Note, error) {
	args := m.Called(ctx, title, contentType, body)
	note, _ := args.Get(0).(*entities.Note)
	return note, args.Error(1)
}

func (m *mockNoteService) UpdateNote(ctx context.Context, id uuid.UUID, update entities.NoteUpdate) (*entities.Note, error) {
	args := m.Called(ctx, id, update)
	note, _ := args.Get(0).(*entities.Note)
	return note, args.Error(1)
}

func (m *mockNoteService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNoteService) AddRow(ctx context.Context, noteID uuid.UUID, rowData entities.JSONObject) (*entities.TableRow, error) {
	args := m.Called(ctx, noteID, rowData)
	row, _ := args.Get(0).(*entities.TableRow)
	return row, args.Error(1)
}

func (m *mockNoteService) ListRows(ctx context.Context, noteID uuid.UUID) ([]*entities.TableRow, error) {
	args := m.Called(ctx, noteID)
	rows, _ := args.Get(0).([]*entities.TableRow)
	return rows, args.Error(1)
}

type mockDraftService struct{ mock.Mock }

func (m *mockDraftService) ListDrafts(ctx context.Context) ([]*entities.Draft, error) {
	args := m.Called(ctx)
	drafts, _ := args.Get(0).([]*entities.Draft)
	return drafts, args.Error(1)
}

func (m *mockDraftService) GetDraft(ctx context.Context, id uuid.UUID) (*entities.Draft, error) {
	args := m.Called(ctx, id)
	draft, _ := args.Get(0).(*entities.Draft)
	return draft, args.Error(1)
}

func (m *mockDraftService) CreateDraft(ctx context.Context, title, body *string) (*entities.Draft, error) {
	args := m.Called(ctx, title, body)
	draft, _ := args.Get(0).(*entities.Draft)
	return draft, args.Error(1)
}

func (m *mockDraftService) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockTagService struct{ mock.Mock }

func (m *mockTagService) CreateTag(ctx context.Context, name string) (*entities.Tag, error) {
	args := m.Called(ctx, name)
	tag, _ := args.Get(0).(*entities.Tag)
	return tag, args.Error(1)
}

func (m *mockTagService) ListTags(ctx context.Context) ([]*entities.Tag, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]*entities.Tag)
	return tags, args.Error(1)
}

func (m *mockTagService) TagNote(ctx context.Context, noteID uuid.UUID, name string) (*entities.Tag, error) {
	args := m.Called(ctx, noteID, name)
	tag, _ := args.Get(0).(*entities.Tag)
	return tag, args.Error(1)
}

func (m *mockTagService) ListNoteTags(ctx context.Context, noteID uuid.UUID) ([]*entities.Tag, error) {
	args := m.Called(ctx, noteID)
	tags, _ := args.Get(0).([]*entities.Tag)
	return tags, args.Error(1)
}

type mockLinkService struct{ mock.Mock }

func (m *mockLinkService) CreateLink(
	ctx context.Context,
	sourceID, targetID uuid.UUID,
	linkType string,
	contextExcerpt *string,
) (*entities.NoteLink, error) {
	args := m.Called(ctx, sourceID, targetID, linkType, contextExcerpt)
	link, _ := args.Get(0).(*entities.NoteLink)
	return link, args.Error(1)
}

func (m *mockLinkService) ListLinks(ctx context.Context, noteID uuid.UUID) ([]*entities.NoteLink, error) {
	args := m.Called(ctx, noteID)
	links, _ := args.Get(0).([]*entities.NoteLink)
	return links, args.Error(1)
}

type mockOrganizer struct{ mock.Mock }

func (m *mockOrganizer) OrganizeDraft(ctx context.Context, draftID uuid.UUID) (*entities.Note, error) {
	args := m.Called(ctx, draftID)
	note, _ := args.Get(0).(*entities.Note)
	return note, args.Error(1)
}
