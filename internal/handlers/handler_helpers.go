package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/comfy-credits/backend/internal/apperrors"
	"github.com/comfy-credits/backend/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// bindingErrorMessage turns a gin binding error into a caller-facing message
// without leaking struct internals.
func bindingErrorMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return "Invalid value for field '" + ve[0].Field() + "'"
	}
	return "Invalid request body"
}

// respondWithError maps service errors onto HTTP responses. Expected business
// outcomes become 4xx; anything else is logged and surfaced as a detail-free 500.
func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient credits"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Resource already exists"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		msg := "Invalid request"
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code < 500 {
			msg = appErr.Message
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500 {
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled error in handler", "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
