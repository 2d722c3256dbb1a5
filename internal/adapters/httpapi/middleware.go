package httpapi

import (
	"net/http"
	"strings"
	"time"

	"marketplace-bidding-service/internal/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const actorKey = "actor"

// RequestLogger logs incoming requests with timing
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
	}
}

// Authenticate turns the bearer token into a shared.Actor on the context
func Authenticate(auth *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			JSONError(c, http.StatusUnauthorized, ErrUnauthenticated, "authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		actor, err := auth.Parse(strings.TrimSpace(token))
		if err != nil {
			JSONError(c, http.StatusUnauthorized, err, "invalid token")
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireRole rejects actors that hold none of the given roles
func RequireRole(roles ...shared.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			JSONError(c, http.StatusUnauthorized, ErrUnauthenticated, "authentication required")
			c.Abort()
			return
		}
		if !actor.HasRole(roles...) {
			JSONError(c, http.StatusForbidden, shared.ErrForbidden, "role "+string(actor.Role)+" may not perform this operation")
			c.Abort()
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) (shared.Actor, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return shared.Actor{}, false
	}
	actor, ok := v.(shared.Actor)
	return actor, ok
}
