package service

import (
	"errors"

	"foodplaces/places-service/internal/app/places/repository"
	"foodplaces/places-service/internal/app/places/util"
	"foodplaces/places-service/internal/app/places/validation"
)

var (
	// Категории ошибок бизнес-логики для обработки в handlers
	ErrInvalidFormat = util.ErrInvalidIdentifier
	ErrValidation    = validation.ErrValidation
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInternal      = errors.New("internal error")
	ErrNoChanges     = errors.New("no changes")
)

// Error - ошибка с категорией и сообщением для клиента.
// errors.Is срабатывает и на категорию, и на исходную причину
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// fromRepository переводит ошибки репозитория в категории сервиса
func fromRepository(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrCityNotFound):
		return newError(ErrNotFound, "City not found", err)
	case errors.Is(err, repository.ErrPlaceNotFound):
		return newError(ErrNotFound, "Place not found", err)
	case errors.Is(err, repository.ErrReviewNotFound):
		return newError(ErrNotFound, "Review not found", err)
	case errors.Is(err, repository.ErrNotModified):
		return newError(ErrNoChanges, "No changes were made", err)
	case errors.Is(err, repository.ErrDuplicateCity):
		return newError(ErrConflict, "City with this city_id already exists", err)
	case errors.Is(err, repository.ErrDuplicateUser):
		return newError(ErrConflict, "Username or email already exists", err)
	default:
		return newError(ErrInternal, "failed to "+action+": "+err.Error(), err)
	}
}
