package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
)

// TextContentResponse markdown-содержимое заметки.
type TextContentResponse struct {
	ID        uuid.UUID           `json:"id"`
	NoteID    uuid.UUID           `json:"note_id"`
	Body      string              `json:"body"`
	Embedding entities.JSONObject `json:"embedding"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// TableContentResponse описание табличной заметки.
type TableContentResponse struct {
	ID         uuid.UUID           `json:"id"`
	NoteID     uuid.UUID           `json:"note_id"`
	SchemaJSON entities.JSONObject `json:"schema_json"`
	RowCount   int                 `json:"row_count"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// NoteResponse заметка с содержимым; отсутствующее содержимое отдается как null.
type NoteResponse struct {
	ID           uuid.UUID             `json:"id"`
	Title        string                `json:"title"`
	ContentType  string                `json:"content_type"`
	Archived     bool                  `json:"archived"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	TextContent  *TextContentResponse  `json:"text_content"`
	TableContent *TableContentResponse `json:"table_content"`
}

// DraftResponse черновик.
type DraftResponse struct {
	ID          uuid.UUID           `json:"id"`
	Title       *string             `json:"title"`
	Body        *string             `json:"body"`
	EditorState entities.JSONObject `json:"editor_state"`
	Metadata    entities.JSONObject `json:"metadata"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TagResponse метка.
type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteLinkResponse связь между заметками.
type NoteLinkResponse struct {
	ID             uuid.UUID `json:"id"`
	SourceID       uuid.UUID `json:"source_id"`
	TargetID       uuid.UUID `json:"target_id"`
	LinkType       string    `json:"link_type"`
	ContextExcerpt *string   `json:"context_excerpt"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableRowResponse строка табличной заметки.
type TableRowResponse struct {
	ID          uuid.UUID           `json:"id"`
	TableNoteID uuid.UUID           `json:"table_note_id"`
	RowData     entities.JSONObject `json:"row_data"`
	Embedding   entities.JSONObject `json:"embedding"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewNoteResponse строит ответ из заметки.
func NewNoteResponse(note *entities.Note) NoteResponse {
	resp := NoteResponse{
		ID:          note.ID,
		Title:       note.Title,
		ContentType: string(note.ContentType),
		Archived:    note.Archived,
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}
	if tc := note.TextContent; tc != nil {
		resp.TextContent = &TextContentResponse{
			ID:        tc.ID,
			NoteID:    tc.NoteID,
			Body:      tc.Body,
			Embedding: tc.Embedding,
			CreatedAt: tc.CreatedAt,
			UpdatedAt: tc.UpdatedAt,
		}
	}
	if tc := note.TableContent; tc != nil {
		schema := tc.SchemaJSON
		if schema == nil {
			schema = entities.EmptyJSONObject()
		}
		resp.TableContent = &TableContentResponse{
			ID:         tc.ID,
			NoteID:     tc.NoteID,
			SchemaJSON: schema,
			RowCount:   tc.RowCount,
			CreatedAt:  tc.CreatedAt,
			UpdatedAt:  tc.UpdatedAt,
		}
	}
	return resp
}

// NewNoteResponses строит список ответов; пустой список сериализуется как [].
func NewNoteResponses(notes []*entities.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteResponse(n))
	}
	return out
}

// NewDraftResponse строит ответ из черновика.
func NewDraftResponse(d *entities.Draft) DraftResponse {
	resp := DraftResponse{
		ID:          d.ID,
		Title:       d.Title,
		Body:        d.Body,
		EditorState: d.EditorState,
		Metadata:    d.Metadata,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if resp.EditorState == nil {
		resp.EditorState = entities.EmptyJSONObject()
	}
	if resp.Metadata == nil {
		resp.Metadata = entities.EmptyJSONObject()
	}
	return resp
}

// NewDraftResponses строит список черновиков.
func NewDraftResponses(drafts []*entities.Draft) []DraftResponse {
	out := make([]DraftResponse, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, NewDraftResponse(d))
	}
	return out
}

// NewTagResponse строит ответ из метки.
func NewTagResponse(t *entities.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

// NewTagResponses строит список меток.
func NewTagResponses(tags []*entities.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, NewTagResponse(t))
	}
	return out
}

// NewNoteLinkResponse строит ответ из связи.
func NewNoteLinkResponse(l *entities.NoteLink) NoteLinkResponse {
	return NoteLinkResponse{
		ID:             l.ID,
		SourceID:       l.SourceID,
		TargetID:       l.TargetID,
		LinkType:       string(l.LinkType),
		ContextExcerpt: l.ContextExcerpt,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// NewNoteLinkResponses строит список связей.
func NewNoteLinkResponses(links []*entities.NoteLink) []NoteLinkResponse {
	out := make([]NoteLinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, NewNoteLinkResponse(l))
	}
	return out
}

// NewTableRowResponse строит ответ из строки таблицы.
func NewTableRowResponse(r *entities.TableRow) TableRowResponse {
	return TableRowResponse{
		ID:          r.ID,
		TableNoteID: r.TableNoteID,
		RowData:     r.RowData,
		Embedding:   r.Embedding,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// NewTableRowResponses строит список строк.
func NewTableRowResponses(rows []*entities.TableRow) []TableRowResponse {
	out := make([]TableRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewTableRowResponse(r))
	}
	return out
}
