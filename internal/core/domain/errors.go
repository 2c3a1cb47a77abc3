package domain

import (
	"errors"
	"strings"
)

// ErrNotFound возвращается хранилищем, когда объявление с указанным ID не существует.
var ErrNotFound = errors.New("property not found")

// ValidationError агрегирует ВСЕ нарушения обязательных полей одной заявки.
// Проверки не прерываются на первой ошибке: клиент получает полный список
// человекочитаемых сообщений.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// AsValidationError возвращает *ValidationError, если err им является.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
