// Package middleware holds the gin middleware shared by every route group.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/auth"
)

const SessionCookie = "jobboard_session"

// Authenticate resolves the session token from the cookie or a bearer header.
// Requests without a valid token continue anonymously; the gates decide.
func Authenticate(tokens auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			raw, _ = c.Cookie(SessionCookie)
		}
		if raw != "" {
			if p, err := tokens.Parse(raw); err == nil {
				c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
			}
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireStudent sends anyone who is not a signed-in student to the login page.
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.FromContext(c.Request.Context()).IsStudent() {
			c.Redirect(http.StatusSeeOther, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin refuses non-admins outright.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.FromContext(c.Request.Context()).IsAdmin() {
			c.String(http.StatusForbidden, "Access Denied: Admins Only")
			c.Abort()
			return
		}
		c.Next()
	}
}
