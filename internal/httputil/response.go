// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/examvault/internal/errors"
	"github.com/allisson/examvault/internal/storage"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string // empty means the error text is returned
}

// Order matters: ErrPathTraversal and ErrPayloadTooLarge must be matched before the
// ErrInvalidInput they may wrap.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested file was not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "A conflict occurred with existing data"},
	{storage.ErrPathTraversal, http.StatusBadRequest, "bad_request", "Invalid file identifier"},
	{apperrors.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, "payload_too_large", ""},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", ""},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Invalid password or corrupted file"},
	{apperrors.ErrIO, http.StatusInternalServerError, "storage_error", "A storage error occurred"},
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON response.
// Unknown errors become a 500 without details. Passwords never reach error messages,
// so validation messages are safe to return.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode := http.StatusInternalServerError
	response := ErrorResponse{Error: "internal_error", Message: "An internal error occurred"}

	for _, m := range errorMappings {
		if !apperrors.Is(err, m.target) {
			continue
		}
		statusCode = m.status
		response = ErrorResponse{Error: m.code, Message: m.message}
		if response.Message == "" {
			response.Message = err.Error()
		}
		break
	}

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c, level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", response.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, response)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed bodies or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}

// HandleRateLimitedGin writes a 429 Too Many Requests response with a Retry-After header
// of at least one second.
func HandleRateLimitedGin(c *gin.Context, retryAfterSeconds int) {
	c.Header("Retry-After", strconv.Itoa(max(retryAfterSeconds, 1)))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   "rate_limit_exceeded",
		Message: "Too many requests, please try again later",
	})
}
