package app_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cacheadapter "github.com/avyukd/bobo-notes/internal/notes/adapters/cache"
	"github.com/avyukd/bobo-notes/internal/notes/app"
	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
	"github.com/avyukd/bobo-notes/internal/notes/ports/cache"
	"github.com/avyukd/bobo-notes/internal/notes/ports/repositories"
)

func strPtr(s string) *string { return &s }

func markdownNote(id uuid.UUID, title, body string) *entities.Note {
	now := time.Now()
	return &entities.Note{
		BaseRecord:  entities.BaseRecord{ID: id, CreatedAt: now, UpdatedAt: now},
		Title:       title,
		ContentType: entities.ContentTypeMarkdown,
		TextContent: &entities.TextContent{
			BaseRecord: entities.BaseRecord{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			NoteID:     id,
			Body:       body,
		},
	}
}

func TestOrganizeDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("черновик превращается в заметку и удаляется", func(t *testing.T) {
		repos := newFakeRepositories()
		uow := &fakeUnitOfWork{repos: repos}
		draftID, noteID := uuid.New(), uuid.New()
		draft := &entities.Draft{
			BaseRecord: entities.BaseRecord{ID: draftID},
			Title:      strPtr("Ideas"),
			Body:       strPtr("buy milk"),
		}
		note := markdownNote(noteID, "Ideas", "buy milk")

		repos.drafts.On("Get", mock.Anything, draftID).Return(draft, nil).Once()
		repos.notes.On("Create", mock.Anything, "Ideas", entities.ContentTypeMarkdown, strPtr("buy milk")).
			Return(note, nil).Once()
		repos.drafts.On("Delete", mock.Anything, draftID).Return(true, nil).Once()

		got, err := app.NewOrganizeService(uow).OrganizeDraft(ctx, draftID)

		require.NoError(t, err)
		assert.Same(t, note, got)
		assert.True(t, uow.committed)
		repos.drafts.AssertExpectations(t)
		repos.notes.AssertExpectations(t)
	})

	t.Run("черновик без заголовка и текста", func(t *testing.T) {
		repos := newFakeRepositories()
		uow := &fakeUnitOfWork{repos: repos}
		draftID := uuid.New()
		note := markdownNote(uuid.New(), entities.UntitledDraftTitle, "")

		repos.drafts.On("Get", mock.Anything, draftID).
			Return(&entities.Draft{BaseRecord: entities.BaseRecord{ID: draftID}}, nil).Once()
		repos.notes.On("Create", mock.Anything, "Untitled Draft", entities.ContentTypeMarkdown, strPtr("")).
			Return(note, nil).Once()
		repos.drafts.On("Delete", mock.Anything, draftID).Return(true, nil).Once()

		got, err := app.NewOrganizeService(uow).OrganizeDraft(ctx, draftID)

		require.NoError(t, err)
		assert.Equal(t, "Untitled Draft", got.Title)
		assert.Empty(t, got.TextContent.Body)
		repos.notes.AssertExpectations(t)
	})

	t.Run("пустой заголовок тоже считается отсутствующим", func(t *testing.T) {
		repos := newFakeRepositories()
		uow := &fakeUnitOfWork{repos: repos}
		draftID := uuid.New()

		repos.drafts.On("Get", mock.Anything, draftID).
			Return(&entities.Draft{Title: strPtr(""), Body: strPtr("x")}, nil).Once()
		repos.notes.On("Create", mock.Anything, "Untitled Draft", entities.ContentTypeMarkdown, strPtr("x")).
			Return(markdownNote(uuid.New(), "Untitled Draft", "x"), nil).Once()
		repos.drafts.On("Delete", mock.Anything, draftID).Return(true, nil).Once()

		_, err := app.NewOrganizeService(uow).OrganizeDraft(ctx, draftID)

		require.NoError(t, err)
		repos.notes.AssertExpectations(t)
	})

	t.Run("несуществующий черновик ничего не пишет", func(t *testing.T) {
		repos := newFakeRepositories()
		uow := &fakeUnitOfWork{repos: repos}
		draftID := uuid.New()

		repos.drafts.On("Get", mock.Anything, draftID).Return(nil, nil).Once()

		got, err := app.NewOrganizeService(uow).OrganizeDraft(ctx, draftID)

		require.ErrorIs(t, err, app.ErrDraftNotFound)
		assert.ErrorIs(t, err, app.ErrNotFound)
		assert.Nil(t, got)
		assert.True(t, uow.rolledBack)
		repos.notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		repos.drafts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("ошибка удаления откатывает создание заметки", func(t *testing.T) {
		repos := newFakeRepositories()
		uow := &fakeUnitOfWork{repos: repos}
		draftID := uuid.New()

		repos.drafts.On("Get", mock.Anything, draftID).
			Return(&entities.Draft{Title: strPtr("Ideas")}, nil).Once()
		repos.notes.On("Create", mock.Anything, "Ideas", entities.ContentTypeMarkdown, strPtr("")).
			Return(markdownNote(uuid.New(), "Ideas", ""), nil).Once()
		repos.drafts.On("Delete", mock.Anything, draftID).Return(false, ErrDatabaseOperation).Once()

		got, err := app.NewOrganizeService(uow).OrganizeDraft(ctx, draftID)

		require.ErrorIs(t, err, ErrDatabaseOperation)
		assert.Contains(t, err.Error(), "failed to delete draft")
		assert.Nil(t, got)
		assert.True(t, uow.rolledBack)
		assert.False(t, uow.committed)
	})
}

func TestDraftUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("создание", func(t *testing.T) {
		drafts := new(mockDraftRepository)
		draft := &entities.Draft{BaseRecord: entities.BaseRecord{ID: uuid.New()}, Title: strPtr("t")}
		drafts.On("Create", mock.Anything, strPtr("t"), (*string)(nil)).Return(draft, nil).Once()

		got, err := app.NewDraftUseCase(drafts).CreateDraft(ctx, strPtr("t"), nil)

		require.NoError(t, err)
		assert.Same(t, draft, got)
		drafts.AssertExpectations(t)
	})

	t.Run("черновик не найден", func(t *testing.T) {
		drafts := new(mockDraftRepository)
		id := uuid.New()
		drafts.On("Get", mock.Anything, id).Return(nil, nil).Once()
		drafts.On("Delete", mock.Anything, id).Return(false, nil).Once()

		uc := app.NewDraftUseCase(drafts)

		_, err := uc.GetDraft(ctx, id)
		require.ErrorIs(t, err, app.ErrDraftNotFound)

		err = uc.DeleteDraft(ctx, id)
		require.ErrorIs(t, err, app.ErrDraftNotFound)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		drafts := new(mockDraftRepository)
		drafts.On("List", mock.Anything).Return(nil, ErrDatabaseOperation).Once()

		got, err := app.NewDraftUseCase(drafts).ListDrafts(ctx)

		require.ErrorIs(t, err, ErrDatabaseOperation)
		assert.ErrorContains(t, err, "failed to list drafts")
		assert.Nil(t, got)
	})
}

func TestNoteUseCase_ListNotes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		limit   int
		wantErr bool
	}{
		{name: "минимум", limit: 1},
		{name: "по умолчанию", limit: app.DefaultNoteLimit},
		{name: "максимум", limit: app.MaxNoteLimit},
		{name: "ноль", limit: 0, wantErr: true},
		{name: "больше максимума", limit: 201, wantErr: true},
		{name: "отрицательный", limit: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := new(mockNoteRepository)
			if !tt.wantErr {
				notes.On("List", mock.Anything, tt.limit).Return([]*entities.Note{}, nil).Once()
			}

			got, err := app.NewNoteUseCase(notes, new(mockNoteCache)).ListNotes(ctx, tt.limit)

			if tt.wantErr {
				require.ErrorIs(t, err, app.ErrInvalidParams)
				assert.Nil(t, got)
				notes.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			notes.AssertExpectations(t)
		})
	}
}

func TestNoteUseCase_GetNote(t *testing.T) {
	ctx := context.Background()

	t.Run("попадание в кеш", func(t *testing.T) {
		notes, noteCache := new(mockNoteRepository), new(mockNoteCache)
		id := uuid.New()
		note := markdownNote(id, "cached", "")
		noteCache.On("Get", mock.Anything, id).Return(note, cache.Version(3), nil).Once()

		got, err := app.NewNoteUseCase(notes, noteCache).GetNote(ctx, id)

		require.NoError(t, err)
		assert.Same(t, note, got)
		notes.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("промах кеша заполняет его с прочитанным поколением", func(t *testing.T) {
		notes, noteCache := new(mockNoteRepository), new(mockNoteCache)
		id := uuid.New()
		note := markdownNote(id, "fresh", "")
		noteCache.On("Get", mock.Anything, id).Return(nil, cache.Version(7), nil).Once()
		notes.On("Get", mock.Anything, id).Return(note, nil).Once()
		noteCache.On("Set", mock.Anything, note, cache.Version(7)).Return(nil).Once()

		got, err := app.NewNoteUseCase(notes, noteCache).GetNote(ctx, id)

		require.NoError(t, err)
		assert.Same(t, note, got)
		noteCache.AssertExpectations(t)
	})

	t.Run("ошибка записи в кеш не мешает чтению", func(t *testing.T) {
		notes, noteCache := new(mockNoteRepository), new(mockNoteCache)
		id := uuid.New()
		note := markdownNote(id, "fresh", "")
		noteCache.On("Get", mock.Anything, id).Return(nil, cache.Version(0), nil).Once()
		notes.On("Get", mock.Anything, id).Return(note, nil).Once()
		noteCache.On("Set", mock.Anything, note, cache.Version(0)).Return(ErrDatabaseOperation).Once()

		got, err := app.NewNoteUseCase(notes, noteCache).GetNote(ctx, id)

		require.NoError(t, err)
		assert.Same(t, note, got)
	})

	t.Run("после ошибки чтения кеш не заполняется", func(t *testing.T) {
		notes, noteCache := new(mockNoteRepository), new(mockNoteCache)
		id := uuid.New()
		note := markdownNote(id, "fresh", "")
		noteCache.On("Get", mock.Anything, id).Return(nil, cache.Version(0), ErrDatabaseOperation).Once()
		notes.On("Get", mock.Anything, id).Return(note, nil).Once()

		got, err := app.NewNoteUseCase(notes, noteCache).GetNote(ctx, id)

		require.NoError(t, err)
		assert.Same(t, note, got)
		noteCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("заметка не найдена", func(t *testing.T) {
		notes, noteCache := new(mockNoteRepository), new(mockNoteCache)
		id := uuid.New()
		noteCache.On("Get", mock.Anything, id).Return(nil, cache.Version(0), nil).Once()
		notes.On("Get", mock.Anything, id).Return(nil, nil).Once()

		got, err := app.NewNoteUseCase(notes, noteCache).GetNote(ctx, id)

		require.ErrorIs(t, err, app.ErrNoteNotFound)
		assert.ErrorIs(t, err, app.ErrNotFound)
		assert.Nil(t, got)
		noteCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNoteUseCase_GetNoteConcurrentUpdate(t *testing.T) {
	ctx := context.Background()

	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	noteCache := cacheadapter.NewRedisNoteCacheWithClient(client, time.Minute)
	t.Cleanup(func() { _ = noteCache.Close() })

	id := uuid.New()
	oldNote := markdownNote(id, "old", "")
	newNote := markdownNote(id, "new", "")
	newTitle := "new"

	notes := new(mockNoteRepository)
	uc := app.NewNoteUseCase(notes, noteCache)

	// Запись успевает пройти между промахом кеша и ответом хранилища.
	notes.On("Get", mock.Anything, id).Run(func(mock.Arguments) {
		_, err := uc.UpdateNote(ctx, id, entities.NoteUpdate{Title: &newTitle})
		require.NoError(t, err)
	}).Return(oldNote, nil).Once()
	notes.On("Update", mock.Anything, id, entities.NoteUpdate{Title: &newTitle}).Return(newNote, nil).Once()
	notes.On("Get", mock.Anything, id).Return(newNote, nil).Once()

	first, err := uc.GetNote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "old", first.Title)

	second, err := uc.GetNote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new", second.Title)

	third, err := uc.GetNote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new", third.Title)
	assert.True(t, s.Exists(cacheadapter.NoteKey(id)))
	notes.AssertExpectations(t)
}

func TestNoteUseCase_CreateNote(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		title       string
		contentType string
		expectRepo  bool
		wantErr     error
	}{
		{name: "markdown", title: "Ideas", contentType: "markdown", expectRepo: true},
		{name: "table", title: "Budget", contentType: "table", expectRepo: true},
		{name: "пустой заголовок допустим", title: "", contentType: "markdown", expectRepo: true},
		{name: "длинный заголовок", title: strings.Repeat("я", 256), contentType: "markdown", wantErr: app.ErrInvalidParams},
		{name: "заголовок ровно 255 символов", title: strings.Repeat("я", 255), contentType: "markdown", expectRepo: true},
		{name: "неизвестный тип", title: "x", contentType: "image", wantErr: entities.ErrInvalidContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := new(mockNoteRepository)
			if tt.expectRepo {
				notes.On("Create", mock.Anything, tt.title, entities.ContentType(tt.contentType), (*string)(nil)).
					Return(&entities.Note{Title: tt.title, ContentType: entities.ContentType(tt.contentType)}, nil).Once()
			}

			got, err := app.NewNoteUseCase(notes, new(mockNoteCache)).CreateNote(ctx, tt.title, tt.contentType, nil)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, app.ErrInvalidParams)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, got.Title)
			notes.AssertExpectations(t)
		})
	}
}

func TestNoteUseCase_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("обновление сбрасывает кеш", func(t *testing.T) {
		notes, noteCache := new(mockNoteRepository), new(mockNoteCache)
		id := uuid.New()
		update := entities.NoteUpdate{Body: entities.OptionalString{Set: true}}
		notes.On("Update", mock.Anything, id, update).Return(markdownNote(id, "t", ""), nil).Once()
		noteCache.On("Invalidate", mock.Anything, id).Return(nil).Once()

		got, err := app.NewNoteUseCase(notes, noteCache).UpdateNote(ctx, id, update)

		require.NoError(t, err)
		assert.Empty(t, got.TextContent.Body)
		noteCache.AssertExpectations(t)
	})

	t.Run("пустое обновление ничего не пишет", func(t *testing.T) {
		notes, noteCache := new(mockNoteRepository), new(mockNoteCache)
		id := uuid.New()
		note := markdownNote(id, "t", "body")
		noteCache.On("Get", mock.Anything, id).Return(note, cache.Version(1), nil).Once()

		got, err := app.NewNoteUseCase(notes, noteCache).UpdateNote(ctx, id, entities.NoteUpdate{})

		require.NoError(t, err)
		assert.Same(t, note, got)
		notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		noteCache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("пустое обновление отсутствующей заметки", func(t *testing.T) {
		notes, noteCache := new(mockNoteRepository), new(mockNoteCache)
		id := uuid.New()
		noteCache.On("Get", mock.Anything, id).Return(nil, cache.Version(0), nil).Once()
		notes.On("Get", mock.Anything, id).Return(nil, nil).Once()

		got, err := app.NewNoteUseCase(notes, noteCache).UpdateNote(ctx, id, entities.NoteUpdate{})

		require.ErrorIs(t, err, app.ErrNoteNotFound)
		assert.Nil(t, got)
		notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("обновление отсутствующей заметки", func(t *testing.T) {
		notes, noteCache := new(mockNoteRepository), new(mockNoteCache)
		id := uuid.New()
		notes.On("Update", mock.Anything, id, mock.Anything).Return(nil, nil).Once()

		got, err := app.NewNoteUseCase(notes, noteCache).UpdateNote(ctx, id, entities.NoteUpdate{Title: strPtr("x")})

		require.ErrorIs(t, err, app.ErrNoteNotFound)
		assert.Nil(t, got)
		noteCache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("неверный тип в обновлении", func(t *testing.T) {
		notes := new(mockNoteRepository)
		bad := entities.ContentType("video")

		_, err := app.NewNoteUseCase(notes, new(mockNoteCache)).
			UpdateNote(ctx, uuid.New(), entities.NoteUpdate{ContentType: &bad})

		require.ErrorIs(t, err, app.ErrInvalidParams)
		notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("удаление", func(t *testing.T) {
		notes, noteCache := new(mockNoteRepository), new(mockNoteCache)
		id := uuid.New()
		notes.On("Delete", mock.Anything, id).Return(true, nil).Once()
		noteCache.On("Invalidate", mock.Anything, id).Return(ErrDatabaseOperation).Once()

		err := app.NewNoteUseCase(notes, noteCache).DeleteNote(ctx, id)

		require.NoError(t, err)
		noteCache.AssertExpectations(t)
	})

	t.Run("удаление отсутствующей заметки", func(t *testing.T) {
		notes := new(mockNoteRepository)
		id := uuid.New()
		notes.On("Delete", mock.Anything, id).Return(false, nil).Once()

		err := app.NewNoteUseCase(notes, new(mockNoteCache)).DeleteNote(ctx, id)

		require.ErrorIs(t, err, app.ErrNoteNotFound)
	})
}

func TestNoteUseCase_Rows(t *testing.T) {
	ctx := context.Background()
	data := entities.JSONObject{"amount": 3.0}

	t.Run("строка добавлена", func(t *testing.T) {
		notes, noteCache := new(mockNoteRepository), new(mockNoteCache)
		id := uuid.New()
		row := &entities.TableRow{TableNoteID: id, RowData: data}
		notes.On("AddRow", mock.Anything, id, data).Return(row, nil).Once()
		noteCache.On("Invalidate", mock.Anything, id).Return(nil).Once()

		got, err := app.NewNoteUseCase(notes, noteCache).AddRow(ctx, id, data)

		require.NoError(t, err)
		assert.Same(t, row, got)
	})

	t.Run("у заметки нет таблицы", func(t *testing.T) {
		notes := new(mockNoteRepository)
		id := uuid.New()
		notes.On("AddRow", mock.Anything, id, data).Return(nil, nil).Once()
		notes.On("Get", mock.Anything, id).Return(markdownNote(id, "t", ""), nil).Once()

		_, err := app.NewNoteUseCase(notes, new(mockNoteCache)).AddRow(ctx, id, data)

		require.ErrorIs(t, err, app.ErrInvalidParams)
	})

	t.Run("заметки нет", func(t *testing.T) {
		notes := new(mockNoteRepository)
		id := uuid.New()
		notes.On("AddRow", mock.Anything, id, data).Return(nil, nil).Once()
		notes.On("Get", mock.Anything, id).Return(nil, nil).Once()

		_, err := app.NewNoteUseCase(notes, new(mockNoteCache)).AddRow(ctx, id, data)

		require.ErrorIs(t, err, app.ErrNoteNotFound)
	})

	t.Run("список строк", func(t *testing.T) {
		notes := new(mockNoteRepository)
		id := uuid.New()
		notes.On("Get", mock.Anything, id).Return(&entities.Note{}, nil).Once()
		notes.On("ListRows", mock.Anything, id).Return([]*entities.TableRow{{}, {}}, nil).Once()

		rows, err := app.NewNoteUseCase(notes, new(mockNoteCache)).ListRows(ctx, id)

		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}

func TestTagUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("создание идемпотентно на уровне хранилища", func(t *testing.T) {
		tags := new(mockTagRepository)
		tag := &entities.Tag{BaseRecord: entities.BaseRecord{ID: uuid.New()}, Name: "work"}
		tags.On("GetOrCreate", mock.Anything, "work").Return(tag, nil).Twice()

		uc := app.NewTagUseCase(tags, new(mockNoteRepository), &fakeUnitOfWork{repos: newFakeRepositories()})

		first, err := uc.CreateTag(ctx, "work")
		require.NoError(t, err)
		second, err := uc.CreateTag(ctx, "work")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		tags.AssertExpectations(t)
	})

	t.Run("ограничения длины имени", func(t *testing.T) {
		tags := new(mockTagRepository)
		uc := app.NewTagUseCase(tags, new(mockNoteRepository), &fakeUnitOfWork{repos: newFakeRepositories()})

		_, err := uc.CreateTag(ctx, "")
		require.ErrorIs(t, err, app.ErrInvalidParams)

		_, err = uc.CreateTag(ctx, strings.Repeat("a", 101))
		require.ErrorIs(t, err, app.ErrInvalidParams)

		tags.On("GetOrCreate", mock.Anything, strings.Repeat("a", 100)).Return(&entities.Tag{}, nil).Once()
		_, err = uc.CreateTag(ctx, strings.Repeat("a", 100))
		require.NoError(t, err)
	})

	t.Run("привязка метки к заметке", func(t *testing.T) {
		repos := newFakeRepositories()
		uow := &fakeUnitOfWork{repos: repos}
		noteID := uuid.New()
		tag := &entities.Tag{BaseRecord: entities.BaseRecord{ID: uuid.New()}, Name: "work"}

		repos.notes.On("Get", mock.Anything, noteID).Return(&entities.Note{}, nil).Once()
		repos.tags.On("GetOrCreate", mock.Anything, "work").Return(tag, nil).Once()
		repos.tags.On("AttachToNote", mock.Anything, noteID, tag.ID).
			Return(&entities.NoteTag{NoteID: noteID, TagID: tag.ID, CreatedAt: time.Now()}, nil).Once()

		got, err := app.NewTagUseCase(new(mockTagRepository), new(mockNoteRepository), uow).TagNote(ctx, noteID, "work")

		require.NoError(t, err)
		assert.Same(t, tag, got)
		assert.True(t, uow.committed)
		repos.tags.AssertExpectations(t)
	})

	t.Run("привязка к отсутствующей заметке", func(t *testing.T) {
		repos := newFakeRepositories()
		uow := &fakeUnitOfWork{repos: repos}
		noteID := uuid.New()

		repos.notes.On("Get", mock.Anything, noteID).Return(nil, nil).Once()

		_, err := app.NewTagUseCase(new(mockTagRepository), new(mockNoteRepository), uow).TagNote(ctx, noteID, "work")

		require.ErrorIs(t, err, app.ErrNoteNotFound)
		assert.True(t, uow.rolledBack)
		repos.tags.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
	})

	t.Run("заметка удалена между проверкой и привязкой", func(t *testing.T) {
		repos := newFakeRepositories()
		uow := &fakeUnitOfWork{repos: repos}
		noteID := uuid.New()
		tag := &entities.Tag{BaseRecord: entities.BaseRecord{ID: uuid.New()}}

		repos.notes.On("Get", mock.Anything, noteID).Return(&entities.Note{}, nil).Once()
		repos.tags.On("GetOrCreate", mock.Anything, "work").Return(tag, nil).Once()
		repos.tags.On("AttachToNote", mock.Anything, noteID, tag.ID).Return(nil, repositories.ErrReferenceNotFound).Once()

		_, err := app.NewTagUseCase(new(mockTagRepository), new(mockNoteRepository), uow).TagNote(ctx, noteID, "work")

		require.ErrorIs(t, err, app.ErrNoteNotFound)
	})

	t.Run("метки заметки", func(t *testing.T) {
		tags, notes := new(mockTagRepository), new(mockNoteRepository)
		noteID := uuid.New()
		notes.On("Get", mock.Anything, noteID).Return(&entities.Note{}, nil).Once()
		tags.On("ListForNote", mock.Anything, noteID).Return([]*entities.Tag{{Name: "a"}}, nil).Once()

		got, err := app.NewTagUseCase(tags, notes, &fakeUnitOfWork{}).ListNoteTags(ctx, noteID)

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestLinkUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("тип по умолчанию explicit", func(t *testing.T) {
		links := new(mockLinkRepository)
		source, target := uuid.New(), uuid.New()
		link := &entities.NoteLink{SourceID: source, TargetID: target, LinkType: entities.LinkTypeExplicit}
		links.On("Create", mock.Anything, source, target, entities.LinkTypeExplicit, (*string)(nil)).Return(link, nil).Once()

		got, err := app.NewLinkUseCase(links, new(mockNoteRepository)).CreateLink(ctx, source, target, "", nil)

		require.NoError(t, err)
		assert.Same(t, link, got)
	})

	t.Run("тип ai_inferred", func(t *testing.T) {
		links := new(mockLinkRepository)
		id := uuid.New()
		links.On("Create", mock.Anything, id, id, entities.LinkTypeAIInferred, strPtr("ctx")).
			Return(&entities.NoteLink{LinkType: entities.LinkTypeAIInferred}, nil).Once()

		got, err := app.NewLinkUseCase(links, new(mockNoteRepository)).CreateLink(ctx, id, id, "ai_inferred", strPtr("ctx"))

		require.NoError(t, err)
		assert.Equal(t, entities.LinkTypeAIInferred, got.LinkType)
	})

	t.Run("неизвестный тип", func(t *testing.T) {
		links := new(mockLinkRepository)

		_, err := app.NewLinkUseCase(links, new(mockNoteRepository)).CreateLink(ctx, uuid.New(), uuid.New(), "guess", nil)

		require.ErrorIs(t, err, app.ErrInvalidParams)
		require.ErrorIs(t, err, entities.ErrInvalidLinkType)
	})

	t.Run("несуществующая заметка", func(t *testing.T) {
		links := new(mockLinkRepository)
		links.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, repositories.ErrReferenceNotFound).Once()

		_, err := app.NewLinkUseCase(links, new(mockNoteRepository)).CreateLink(ctx, uuid.New(), uuid.New(), "explicit", nil)

		require.ErrorIs(t, err, app.ErrNoteNotFound)
	})

	t.Run("связи отсутствующей заметки", func(t *testing.T) {
		links, notes := new(mockLinkRepository), new(mockNoteRepository)
		id := uuid.New()
		notes.On("Get", mock.Anything, id).Return(nil, nil).Once()

		_, err := app.NewLinkUseCase(links, notes).ListLinks(ctx, id)

		require.ErrorIs(t, err, app.ErrNoteNotFound)
		links.AssertNotCalled(t, "ListForNote", mock.Anything, mock.Anything)
	})
}
