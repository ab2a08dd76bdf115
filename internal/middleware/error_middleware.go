package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/backend/internal/app/models/dto"
	"github.com/coursehub/backend/internal/pkg/apperrors"
	"github.com/coursehub/backend/internal/pkg/logger"
)

// HandleAPIError maps a service or repository error onto the wire contract:
// a status code and a {message, error?} body. The error field carries debug
// detail outside release mode only.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidRating),
		errors.Is(err, apperrors.ErrCourseNotCompleted):
		respondError(c, http.StatusBadRequest, apperrors.Message(err, "Invalid request"), err)

	case errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenMalformed),
		errors.Is(err, apperrors.ErrNoEmailClaim):
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, apperrors.Message(err, "Forbidden"), err)

	case errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, apperrors.Message(err, "Not found"), err)

	case errors.Is(err, apperrors.ErrDatabaseUnavailable):
		respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable", err)

	case errors.Is(err, apperrors.ErrUpstreamTimeout),
		errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, "Upstream timeout", err)

	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

func respondError(c *gin.Context, status int, message string, err error) {
	body := dto.NewErrorResponse(message)
	if gin.Mode() != gin.ReleaseMode && err != nil {
		body = body.WithDebug(err.Error())
	}
	c.JSON(status, body)
}
