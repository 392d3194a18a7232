package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/ledgerview/internal/logger"
	"github.com/example/ledgerview/pkg/access"
)

const (
	requestIDHeader = "X-Request-ID"
	roleHeader      = "X-User-Role"
	requestIDKey    = "request_id"
)

// requestID reuses the caller's X-Request-ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs every request and stores a request-scoped logger in the
// request context.
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := logger.WithFields(log, map[string]any{
			"request_id": c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))

		c.Next()

		reqLog.Info().
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("remote_addr", c.ClientIP()).
			Msg("HTTP request")
	}
}

func recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error().
			Interface("error", err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Panic recovered")
		writeError(c, http.StatusInternalServerError, "Internal server error")
	})
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader, roleHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}

// requireRole gates a route group on the X-User-Role header
func requireRole(allowed ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := access.ParseRole(c.GetHeader(roleHeader))
		decision := access.Decide(role, allowed)
		if decision != access.Allow {
			reqLog := logger.FromContext(c.Request.Context())
			reqLog.Warn().
				Str("role", string(role)).
				Str("decision", decision.String()).
				Msg("Request rejected by role gate")
		}
		switch decision {
		case access.RedirectLogin:
			writeError(c, http.StatusUnauthorized, "login required")
		case access.Unauthorized:
			writeError(c, http.StatusForbidden, "role not allowed")
		default:
			c.Next()
		}
	}
}
