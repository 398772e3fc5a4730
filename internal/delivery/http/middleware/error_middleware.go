package middleware

import (
	"errors"
	"net/http"

	"ameencheck-backend/internal/delivery/http/response"
	"ameencheck-backend/pkg/apperror"
	"ameencheck-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps errors appended to the gin context onto the wire shape.
// AppError carries its own status code; anything else is logged and surfaced
// as a generic 500 so internal detail never leaks.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Error("request failed",
					"error", appErr.Err,
					"path", c.Request.URL.Path,
					"status", appErr.Code,
				)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		logger.Log.Error("unhandled error", "error", err, "path", c.Request.URL.Path)
		response.Error(c, http.StatusInternalServerError, "Database error")
	}
}
