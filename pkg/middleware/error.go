package middleware

import (
	"errors"
	"net/http"

	"clipshare-platform/pkg/errutil"

	"github.com/gin-gonic/gin"
)

// Error maps domain errors collected on the gin context to an HTTP response.
// Unrecognised errors surface as a generic 500 so storage failures stay
// retry-able from the client's point of view.
func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		var be errutil.BaseError
		if errors.As(last.Err, &be) {
			c.JSON(be.Code.HTTPStatus(), be.JSON())
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    errutil.StatusInternal,
				"message": "internal error",
			},
		})
	}
}
