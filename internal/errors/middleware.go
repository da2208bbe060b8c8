package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RecoveryMiddleware converts panics into logged 500 responses.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	})
}

// ErrorHandlerMiddleware renders the first error attached to the context via
// c.Error as a JSON response with the status the error carries.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors[0].Err
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		}
		c.JSON(status, gin.H{"error": Message(err)})
	}
}

// Err attaches an error to the gin context for the error handler middleware.
func Err(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
