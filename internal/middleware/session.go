package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pholio/internal/models"
	"pholio/internal/security"
)

// SessionCookie carries the admin session token between requests.
const SessionCookie = "pholio_session"

const (
	ctxAdminKey  = "current_admin"
	ctxClaimsKey = "session_claims"
	ctxTokenKey  = "session_token"
)

type AdminSource interface {
	GetByID(ctx context.Context, id int64) (models.AdminUser, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Session resolves the caller's identity from the session cookie or a bearer
// token. Requests with missing, invalid, or revoked tokens stay anonymous;
// rejecting them is the job of RequireAdmin or PageGate downstream.
func Session(secret string, admins AdminSource, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := TokenFromRequest(c)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := security.ParseSessionToken(tokenStr, secret)
		if err != nil {
			c.Next()
			return
		}

		if isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID); err != nil || isRevoked {
			c.Next()
			return
		}

		admin, err := admins.GetByID(c.Request.Context(), claims.AdminID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxAdminKey, admin)
		c.Set(ctxClaimsKey, *claims)
		c.Set(ctxTokenKey, tokenStr)

		c.Next()
	}
}

// RequireAdmin guards JSON API routes: anonymous requests get 401.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentAdmin(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// PageGate guards the admin HTML pages. It matches every path under
// adminRoot, registered or not, so an unrouted admin URL still redirects
// instead of falling through to a 404. Anonymous visitors go to the login
// page; an already-authenticated visit to the login page goes back to the
// admin root. Paths outside adminRoot pass through untouched.
func PageGate(loginPath, adminRoot string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path != adminRoot && !strings.HasPrefix(path, adminRoot+"/") {
			c.Next()
			return
		}

		_, authenticated := CurrentAdmin(c)
		onLogin := path == loginPath

		if !authenticated && !onLogin {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		if authenticated && onLogin {
			c.Redirect(http.StatusFound, adminRoot)
			c.Abort()
			return
		}

		c.Next()
	}
}

func CurrentAdmin(c *gin.Context) (models.AdminUser, bool) {
	val, exists := c.Get(ctxAdminKey)
	if !exists {
		return models.AdminUser{}, false
	}
	admin, ok := val.(models.AdminUser)
	return admin, ok
}

func SessionToken(c *gin.Context) string {
	return c.GetString(ctxTokenKey)
}

func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
