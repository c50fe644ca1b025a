// Package dto содержит объекты передачи данных HTTP API заметок.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Ошибки разбора тела запроса.
var (
	ErrMalformedJSON = errors.New("malformed JSON body")

	errExtraField    = errors.New("extra fields not permitted")
	errFieldRequired = errors.New("field required")
)

const unknownFieldPrefix = "json: unknown field "

// BodyField ключ ошибки, относящейся к телу запроса целиком.
const BodyField = "request_body"

// MissingBody ошибка запроса без тела.
func MissingBody() error {
	return validation.Errors{BodyField: errFieldRequired}
}

// BindError переводит ошибку разбора тела в ошибку API: несовпадение типов
// становится ошибкой поля, прочие ошибки синтаксиса дают ErrMalformedJSON.
// Ошибки проверки validation.Errors возвращаются как есть.
func BindError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return verrs
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = BodyField
		}
		return validation.Errors{field: fmt.Errorf("must be of type %s", typeErr.Type)}
	}
	return fmt.Errorf("%w: %w", ErrMalformedJSON, err)
}

// decode разбирает JSON-объект в dst. При strict неизвестные поля отклоняются.
func decode(body []byte, dst any, strict bool) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if strict {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return MissingBody()
		}
		if field, ok := strings.CutPrefix(err.Error(), unknownFieldPrefix); ok {
			return validation.Errors{strings.Trim(field, `"`): errExtraField}
		}
		return BindError(err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrMalformedJSON)
	}
	return nil
}
