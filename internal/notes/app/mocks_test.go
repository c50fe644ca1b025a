package app_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
	"github.com/avyukd/bobo-notes/internal/notes/ports/cache"
	"github.com/avyukd/bobo-notes/internal/notes/ports/repositories"
)

var ErrDatabaseOperation = errors.New("database error")

type mockDraftRepository struct {
	mock.Mock
}

func (m *mockDraftRepository) List(ctx context.Context) ([]*entities.Draft, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Draft), args.Error(1)
}

func (m *mockDraftRepository) Get(ctx context.Context, id uuid.UUID) (*entities.Draft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draft), args.Error(1)
}

func (m *mockDraftRepository) Create(ctx context.Context, title, body *string) (*entities.Draft, error) {
	args := m.Called(ctx, title, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draft), args.Error(1)
}

func (m *mockDraftRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) List(ctx context.Context, limit int) ([]*entities.Note, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Get(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Create(
	ctx context.Context, title string, contentType entities.ContentType, body *string,
) (*entities.Note, error) {
	args := m.Called(ctx, title, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, id uuid.UUID, update entities.NoteUpdate) (*entities.Note, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockNoteRepository) AddRow(ctx context.Context, noteID uuid.UUID, rowData entities.JSONObject) (*entities.TableRow, error) {
	args := m.Called(ctx, noteID, rowData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TableRow), args.Error(1)
}

func (m *mockNoteRepository) ListRows(ctx context.Context, noteID uuid.UUID) ([]*entities.TableRow, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TableRow), args.Error(1)
}

type mockTagRepository struct {
	mock.Mock
}

func (m *mockTagRepository) GetOrCreate(ctx context.Context, name string) (*entities.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) ListAll(ctx context.Context) ([]*entities.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) AttachToNote(ctx context.Context, noteID, tagID uuid.UUID) (*entities.NoteTag, error) {
	args := m.Called(ctx, noteID, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NoteTag), args.Error(1)
}

func (m *mockTagRepository) ListForNote(ctx context.Context, noteID uuid.UUID) ([]*entities.Tag, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tag), args.Error(1)
}

type mockLinkRepository struct {
	mock.Mock
}

func (m *mockLinkRepository) Create(
	ctx context.Context, sourceID, targetID uuid.UUID, linkType entities.LinkType, contextExcerpt *string,
) (*entities.NoteLink, error) {
	args := m.Called(ctx, sourceID, targetID, linkType, contextExcerpt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NoteLink), args.Error(1)
}

func (m *mockLinkRepository) ListForNote(ctx context.Context, noteID uuid.UUID) ([]*entities.NoteLink, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.NoteLink), args.Error(1)
}

type mockNoteCache struct {
	mock.Mock
}

func (m *mockNoteCache) Get(ctx context.Context, id uuid.UUID) (*entities.Note, cache.Version, error) {
	args := m.Called(ctx, id)
	version, _ := args.Get(1).(cache.Version)
	if args.Get(0) == nil {
		return nil, version, args.Error(2)
	}
	return args.Get(0).(*entities.Note), version, args.Error(2)
}

func (m *mockNoteCache) Set(ctx context.Context, note *entities.Note, seen cache.Version) error {
	return m.Called(ctx, note, seen).Error(0)
}

func (m *mockNoteCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNoteCache) Close() error {
	return m.Called().Error(0)
}

// fakeRepositories набор mock-репозиториев, выдаваемый fakeUnitOfWork.
type fakeRepositories struct {
	drafts *mockDraftRepository
	notes  *mockNoteRepository
	tags   *mockTagRepository
	links  *mockLinkRepository
}

func newFakeRepositories() *fakeRepositories {
	return &fakeRepositories{
		drafts: new(mockDraftRepository),
		notes:  new(mockNoteRepository),
		tags:   new(mockTagRepository),
		links:  new(mockLinkRepository),
	}
}

func (f *fakeRepositories) Drafts() repositories.DraftRepository { return f.drafts }
func (f *fakeRepositories) Notes() repositories.NoteRepository   { return f.notes }
func (f *fakeRepositories) Tags() repositories.TagRepository     { return f.tags }
func (f *fakeRepositories) Links() repositories.LinkRepository   { return f.links }

// fakeUnitOfWork запоминает, чем закончилась транзакция.
type fakeUnitOfWork struct {
	repos      *fakeRepositories
	committed  bool
	rolledBack bool
}

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos repositories.Repositories) error) error {
	if err := fn(ctx, u.repos); err != nil {
		u.rolledBack = true
		return err
	}
	u.committed = true
	return nil
}
