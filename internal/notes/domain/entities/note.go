package entities

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ContentType вид содержимого заметки.
type ContentType string

// Допустимые виды содержимого.
const (
	ContentTypeMarkdown ContentType = "markdown"
	ContentTypeTable    ContentType = "table"
)

// Ограничения длины строковых полей.
const (
	MaxTitleLength   = 255
	MaxTagNameLength = 100
)

// ParseContentType приводит строку к ContentType.
func ParseContentType(s string) (ContentType, error) {
	switch ct := ContentType(strings.TrimSpace(s)); ct {
	case ContentTypeMarkdown, ContentTypeTable:
		return ct, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidContentType, s)
	}
}

// Note организованная адресуемая единица содержимого.
type Note struct {
	BaseRecord
	Title        string        `json:"title"`
	ContentType  ContentType   `json:"content_type"`
	Archived     bool          `json:"archived"`
	TextContent  *TextContent  `json:"text_content,omitempty"`
	TableContent *TableContent `json:"table_content,omitempty"`
}

// TextContent markdown-текст заметки.
type TextContent struct {
	BaseRecord
	NoteID    uuid.UUID  `json:"note_id"`
	Body      string     `json:"body"`
	Embedding JSONObject `json:"embedding"`
}

// TableContent описание табличной заметки.
type TableContent struct {
	BaseRecord
	NoteID     uuid.UUID  `json:"note_id"`
	SchemaJSON JSONObject `json:"schema_json"`
	RowCount   int        `json:"row_count"`
}

// TableRow строка табличной заметки.
type TableRow struct {
	BaseRecord
	TableNoteID uuid.UUID  `json:"table_note_id"`
	RowData     JSONObject `json:"row_data"`
	Embedding   JSONObject `json:"embedding"`
}

// OptionalString поле частичного обновления, которое различает
// "не передано", "передано null" и "передано значение".
type OptionalString struct {
	Set   bool
	Value *string
}

// NoteUpdate набор изменений заметки. Nil-указатель означает "не менять".
type NoteUpdate struct {
	Title       *string
	ContentType *ContentType
	Archived    *bool
	Body        OptionalString
}

// IsEmpty сообщает, что обновление не меняет ни одного поля.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.ContentType == nil && u.Archived == nil && !u.Body.Set
}
