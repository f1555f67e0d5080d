package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/laramoda/storefront-api/internal/dto"
	"github.com/laramoda/storefront-api/internal/service"
	"github.com/laramoda/storefront-api/internal/storage"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{Error: code, Message: message})
}

func respondValidation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Error: "validation_failed", Message: "validation failed", Fields: fields,
	})
}

// respondBindError reports binding failures, field by field when the
// validator produced them.
func respondBindError(c *gin.Context, err error) {
	if fields := dto.FieldErrors(err); fields != nil {
		respondValidation(c, fields)
		return
	}
	respondError(c, http.StatusBadRequest, "bad_request", err.Error())
}

// respondServiceError maps service sentinels to HTTP statuses; anything
// unknown is logged and reported as a 500.
func respondServiceError(c *gin.Context, log *slog.Logger, err error) {
	var fieldErr *service.FieldError
	switch {
	case errors.As(err, &fieldErr):
		respondValidation(c, map[string]string{fieldErr.Field: fieldErr.Message})
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrCartItemNotFound):
		respondError(c, http.StatusNotFound, "not_found", rootMessage(err))
	case errors.Is(err, service.ErrOrderAccessDenied):
		respondError(c, http.StatusForbidden, "forbidden", "access denied")
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrEmailInUse):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, service.ErrNoImages):
		respondValidation(c, map[string]string{"images": err.Error()})
	case errors.Is(err, service.ErrInvalidPrice):
		respondValidation(c, map[string]string{"price": err.Error()})
	case errors.Is(err, service.ErrInvalidStatus):
		respondValidation(c, map[string]string{"status": err.Error()})
	case errors.Is(err, service.ErrProductUnavailable):
		respondError(c, http.StatusBadRequest, "product_unavailable", err.Error())
	case errors.Is(err, storage.ErrImageTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "image_too_large", err.Error())
	case errors.Is(err, storage.ErrNotImage):
		respondValidation(c, map[string]string{"images": err.Error()})
	default:
		if log != nil {
			log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		}
		respondError(c, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// rootMessage returns the text of the innermost wrapped error.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}
