package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// Authenticate parses the Bearer token and stores the caller as auth.Context.
func Authenticate(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Authorization header must be a Bearer token.")
			return
		}

		caller, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid_token", "Invalid or expired token.")
			return
		}

		auth.Set(c, caller)
		c.Next()
	}
}

// RequireRole lets through callers whose role is one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := auth.FromGin(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required.")
			return
		}

		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}

		abort(c, http.StatusForbidden, "forbidden", httperr.Message("forbidden"))
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, httperr.HTTPError{Code: code, Message: message})
}
