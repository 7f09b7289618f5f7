package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/xdownload/internal/domain"
	"go.uber.org/zap"
)

// Recovery turns a panic in a handler into an unexpected_failure response.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			err := domain.NewEngineError(domain.ErrUnexpected, fmt.Errorf("panic: %v", rec))
			log.Error("Panic recovered",
				zap.Error(err),
				zap.String("error_kind", string(domain.KindOf(err))),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Stack("stack"),
			)

			// Headers already sent; all we can do is stop the chain.
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "internal server error",
				"error_kind": domain.KindUnexpected,
			})
		}()
		c.Next()
	}
}
