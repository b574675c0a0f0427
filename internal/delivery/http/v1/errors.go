package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nlitvinov/go-task-api/internal/services"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, err)
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

// abortServiceError maps service failures to the wire taxonomy.
// Anything unrecognized becomes a generic 500; the detail stays in the
// server log.
func abortServiceError(c *gin.Context, logger zerolog.Logger, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		abort(c, newBadRequestError(validationErr.Message))
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newAPIError(http.StatusNotFound, "Task not found"))
	case errors.Is(err, services.ErrInvalidCredentials):
		abort(c, newUnauthorizedError("Invalid username or password"))
	case errors.Is(err, services.ErrInvalidToken):
		abort(c, newUnauthorizedError("Invalid or expired token"))
	case errors.Is(err, services.ErrUsernameTaken):
		abort(c, newAPIError(http.StatusConflict, "Username already taken"))
	default:
		logger.Error().
			Err(err).
			Str("path", c.FullPath()).
			Msg("unexpected service error")
		abort(c, newAPIError(http.StatusInternalServerError, "Internal server error"))
	}
}
