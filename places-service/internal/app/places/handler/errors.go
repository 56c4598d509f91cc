package handler

import (
	"errors"
	"net/http"

	"foodplaces/pkg/logger"
	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/service"
	"foodplaces/places-service/internal/app/places/validation"

	"github.com/gin-gonic/gin"
)

// Категории ошибок в поле error ответа
const (
	CategoryInvalidFormat = "InvalidFormat"
	CategoryValidation    = "ValidationError"
	CategoryNotFound      = "NotFound"
	CategoryConflict      = "Conflict"
	CategoryUnauthorized  = "Unauthorized"
	CategoryForbidden     = "Forbidden"
	CategoryInternal      = "InternalError"
)

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidFormat):
		return http.StatusBadRequest, CategoryInvalidFormat
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, CategoryValidation
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, CategoryUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, CategoryForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, CategoryNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, CategoryConflict
	default:
		return http.StatusInternalServerError, CategoryInternal
	}
}

// respondError пишет ответ по категории ошибки сервиса.
// NoChanges - не ошибка для клиента: 200 с сообщением
func respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNoChanges) {
		c.JSON(http.StatusOK, entity.SuccessResponse{Message: err.Error()})
		return
	}

	status, category := classify(err)
	resp := entity.ErrorResponse{Error: category, Message: err.Error()}
	if fe, ok := validation.AsFieldError(err); ok {
		resp.Field = fe.Field
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("request_id", logger.RequestID(c)).
			Str("path", c.FullPath()).
			Msg("request failed")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

func badBody(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, entity.ErrorResponse{
		Error:   CategoryValidation,
		Message: "Invalid JSON body",
		Field:   "body",
	})
}
