package entities

import "errors"

// Ошибки валидации доменных значений.
var (
	ErrInvalidContentType = errors.New("invalid note content type")
	ErrInvalidLinkType    = errors.New("invalid note link type")
)
