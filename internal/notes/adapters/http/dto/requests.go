package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/avyukd/bobo-notes/internal/notes/domain/entities"
)

var contentTypes = []any{string(entities.ContentTypeMarkdown), string(entities.ContentTypeTable)}

var linkTypes = []any{string(entities.LinkTypeExplicit), string(entities.LinkTypeAIInferred)}

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title       *string `json:"title"`
	ContentType string  `json:"content_type"`
	Body        *string `json:"body"`
}

// Validate проверяет запрос на создание заметки.
func (r *CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.NotNil, validation.RuneLength(0, entities.MaxTitleLength)),
		validation.Field(&r.ContentType, validation.Required, validation.In(contentTypes...)),
	)
}

// UpdateNoteRequest частичное обновление заметки. Поля, отсутствующие в теле,
// не меняются; body различает отсутствие и явный null.
type UpdateNoteRequest struct {
	Title       *string `json:"title"`
	ContentType *string `json:"content_type"`
	Archived    *bool   `json:"archived"`
	Body        entities.OptionalString
}

// Validate проверяет запрос на обновление заметки.
func (r *UpdateNoteRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.RuneLength(0, entities.MaxTitleLength)),
		validation.Field(&r.ContentType, validation.In(contentTypes...)),
	)
}

// ToNoteUpdate переводит запрос в доменное обновление.
func (r *UpdateNoteRequest) ToNoteUpdate() entities.NoteUpdate {
	update := entities.NoteUpdate{
		Title:    r.Title,
		Archived: r.Archived,
		Body:     r.Body,
	}
	if r.ContentType != nil {
		ct := entities.ContentType(*r.ContentType)
		update.ContentType = &ct
	}
	return update
}

// DecodeUpdateNote разбирает тело PATCH-запроса. Неизвестные поля отклоняются.
func DecodeUpdateNote(body []byte) (*UpdateNoteRequest, error) {
	var fields map[string]json.RawMessage
	if err := decode(body, &fields, false); err != nil {
		return nil, err
	}

	var req UpdateNoteRequest
	errs := validation.Errors{}
	for name, raw := range fields {
		var err error
		switch name {
		case "title":
			err = json.Unmarshal(raw, &req.Title)
		case "content_type":
			err = json.Unmarshal(raw, &req.ContentType)
		case "archived":
			err = json.Unmarshal(raw, &req.Archived)
		case "body":
			req.Body.Set = true
			err = json.Unmarshal(raw, &req.Body.Value)
		default:
			err = errExtraField
		}
		if err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				err = fmt.Errorf("must be of type %s", typeErr.Type)
			}
			errs[name] = err
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateDraftRequest содержит данные для создания черновика.
type CreateDraftRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// TagRequest содержит имя метки.
type TagRequest struct {
	Name string `json:"name"`
}

// Validate проверяет имя метки.
func (r *TagRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, entities.MaxTagNameLength)),
	)
}

// DecodeTag разбирает тело запроса с меткой. Лишние поля запрещены.
func DecodeTag(body []byte) (*TagRequest, error) {
	var req TagRequest
	if err := decode(body, &req, true); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateLinkRequest содержит данные для создания связи.
type CreateLinkRequest struct {
	SourceID       string  `json:"source_id"`
	TargetID       string  `json:"target_id"`
	LinkType       string  `json:"link_type"`
	ContextExcerpt *string `json:"context_excerpt"`
}

// Validate проверяет запрос на создание связи.
func (r *CreateLinkRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SourceID, validation.Required, validation.By(isUUID)),
		validation.Field(&r.TargetID, validation.Required, validation.By(isUUID)),
		validation.Field(&r.LinkType, validation.In(linkTypes...)),
	)
}

// IDs возвращает разобранные идентификаторы концов связи.
func (r *CreateLinkRequest) IDs() (uuid.UUID, uuid.UUID) {
	return uuid.MustParse(r.SourceID), uuid.MustParse(r.TargetID)
}

// AddRowRequest содержит данные строки таблицы.
type AddRowRequest struct {
	RowData entities.JSONObject `json:"row_data"`
}

// Validate проверяет наличие данных строки.
func (r *AddRowRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RowData, validation.NotNil),
	)
}

func isUUID(value any) error {
	s, _ := value.(string)
	if _, err := uuid.Parse(s); err != nil {
		return errors.New("must be a valid UUID")
	}
	return nil
}
