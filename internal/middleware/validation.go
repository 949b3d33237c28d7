package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/unishare/internal/app/models/dto"
	"github.com/yigit/unishare/internal/pkg/validation"
)

// BindJSON binds the request body into obj. On failure it writes a 400 response
// and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// ParseResourceID reads the :id path parameter. A malformed id is answered with 400.
func ParseResourceID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("id")
	if validation.ValidResourceID(raw) {
		if id, err := uuid.Parse(raw); err == nil {
			return id, true
		}
	}
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid resource id").WithField("id")
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	return uuid.Nil, false
}

// ParseCommentID reads the :commentId path parameter. A malformed id is answered with 400.
func ParseCommentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid comment id").WithField("commentId")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
