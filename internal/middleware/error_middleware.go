package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unishare/internal/app/models/dto"
	"github.com/yigit/unishare/internal/pkg/apperrors"
	"github.com/yigit/unishare/internal/pkg/logger"
)

// --- Central Error Handling ---

// HandleAPIError maps a service error to the matching HTTP response
func HandleAPIError(c *gin.Context, err error) {
	message := apperrors.PublicMessage(err)

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		if message == "" {
			message = "Validation failed"
		}
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
		if field := apperrors.FieldOf(err); field != "" {
			detail = detail.WithField(field)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
	case errors.Is(err, apperrors.ErrCommentNotFound):
		if message == "" {
			message = "Comment not found"
		}
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeCommentNotFound, message)))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		if message == "" {
			message = "Resource not found"
		}
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)))
	case errors.Is(err, apperrors.ErrStore):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Str("requestID", c.GetString(requestIDKey)).Msg("Store failure")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Something went wrong, please try again later")))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Str("requestID", c.GetString(requestIDKey)).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
