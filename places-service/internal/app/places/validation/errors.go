package validation

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidDate        = errors.New("invalid date")
)

// FieldError - первая найденная ошибка запроса с именем поля в нотации JSON.
// Всегда совместима с ErrValidation через errors.Is
type FieldError struct {
	Field  string
	Reason string
	kind   error
}

func NewFieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason, kind: ErrValidation}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() []error {
	if e.kind == nil || e.kind == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{e.kind, ErrValidation}
}

// AsFieldError извлекает FieldError из цепочки ошибок
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
