// Package entities описывает сущности сервиса заметок.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// BaseRecord общие поля всех хранимых сущностей.
type BaseRecord struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONObject произвольный структурированный JSON-объект (editor state, metadata, schema).
type JSONObject map[string]any

// EmptyJSONObject возвращает пустой объект, который сериализуется как {}.
func EmptyJSONObject() JSONObject {
	return JSONObject{}
}
