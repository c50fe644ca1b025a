package entities

import (
	"time"

	"github.com/google/uuid"
)

// Tag переиспользуемая метка с уникальным именем.
type Tag struct {
	BaseRecord
	Name string `json:"name"`
}

// NoteTag связь заметки и метки.
type NoteTag struct {
	NoteID    uuid.UUID `json:"note_id"`
	TagID     uuid.UUID `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
