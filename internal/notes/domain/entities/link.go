package entities

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// LinkType причина связи двух заметок.
type LinkType string

// Допустимые типы связей.
const (
	LinkTypeExplicit   LinkType = "explicit"
	LinkTypeAIInferred LinkType = "ai_inferred"
)

// ParseLinkType приводит строку к LinkType.
func ParseLinkType(s string) (LinkType, error) {
	switch lt := LinkType(strings.TrimSpace(s)); lt {
	case LinkTypeExplicit, LinkTypeAIInferred:
		return lt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLinkType, s)
	}
}

// NoteLink направленная связь между заметками.
type NoteLink struct {
	BaseRecord
	SourceID       uuid.UUID `json:"source_id"`
	TargetID       uuid.UUID `json:"target_id"`
	LinkType       LinkType  `json:"link_type"`
	ContextExcerpt *string   `json:"context_excerpt"`
}
