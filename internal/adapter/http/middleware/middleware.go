package middleware

import (
	"net/http"
	"strings"
	"time"

	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/pkg/apperror"
	"wallet-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// Headers populated by the API gateway after authentication.
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRoles = "X-User-Roles"

	HeaderRequestID = "X-Request-ID"

	// CtxIdentity is the gin context key holding the caller's *domain.Identity.
	CtxIdentity = "identity"
)

// Identity resolves the caller from a Bearer token or from gateway headers.
// Requests without credentials continue with no identity (service-to-service).
func Identity(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id *domain.Identity

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if len(authHeader) < 8 || authHeader[:7] != "Bearer " || tokenSvc == nil {
				response.Error(c, apperror.ErrInvalidToken())
				c.Abort()
				return
			}
			resolved, err := tokenSvc.Validate(authHeader[7:])
			if err != nil {
				log.Debug().Err(err).Msg("bearer token rejected")
				response.Error(c, apperror.ErrInvalidToken())
				c.Abort()
				return
			}
			id = resolved
		} else if raw := c.GetHeader(HeaderUserID); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				response.Error(c, apperror.ErrInvalidToken())
				c.Abort()
				return
			}
			id = &domain.Identity{
				UserID: userID,
				Email:  c.GetHeader(HeaderUserEmail),
				Roles:  splitRoles(c.GetHeader(HeaderUserRoles)),
			}
		}

		if id != nil {
			c.Set(CtxIdentity, id)
			c.Request = c.Request.WithContext(domain.WithIdentity(c.Request.Context(), id))
		}
		c.Next()
	}
}

// RequireRole rejects callers without an identity (401) or without role (403).
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := domain.IdentityFromContext(c.Request.Context())
		if id == nil {
			response.Error(c, apperror.ErrUnauthenticated())
			c.Abort()
			return
		}
		if !id.HasRole(role) {
			response.Error(c, apperror.ErrUnauthorizedAccess())
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity resolved for this request, or nil.
func IdentityFrom(c *gin.Context) *domain.Identity {
	return domain.IdentityFromContext(c.Request.Context())
}

// RequestID propagates X-Request-ID or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("request_id", c.GetString(response.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

func splitRoles(raw string) []string {
	if raw == "" {
		return nil
	}
	var roles []string
	for _, r := range strings.Split(raw, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, strings.ToUpper(r))
		}
	}
	return roles
}
