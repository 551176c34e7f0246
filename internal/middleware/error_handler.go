package middleware

import (
	"errors"
	"net/http"
	"time"

	"catalogo/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders the last error queued with c.Error through
// apierror.Render. Handlers never write error bodies themselves.
// In production, storage failures lose their detailed message.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := apierror.Render(err, production)

		// Log the internal error with full context (for debugging)
		if status >= http.StatusInternalServerError {
			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Err(err).
				Msg("unhandled error")
		} else {
			var apiErr *apierror.Error
			kind := "unknown"
			if errors.As(err, &apiErr) {
				kind = apiErr.Kind.String()
			}
			log.Debug().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("kind", kind).
				Int("status", status).
				Msg(body.Message)
		}

		c.AbortWithStatusJSON(status, body)
	}
}

// Recovery handles panics and converts them into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Msg("panic recovered")
				status, body := apierror.Render(nil, true)
				c.AbortWithStatusJSON(status, body)
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency, and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
