package auth

import (
	"context"
	"net/http"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/pkg/logging"
)

const sessionKey = "session"

// Session is the authenticated caller attached to the request context.
type Session struct {
	UID   string
	Email string
	Role  league.Role
}

func (s Session) IsAdmin() bool {
	return s.Role == league.RoleAdmin
}

// TokenVerifier is satisfied by *firebaseauth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

type RoleResolver interface {
	GetUserRole(ctx context.Context, userID string) (league.Role, error)
}

// AuthMiddleware verifies the bearer token and attaches a Session.
func AuthMiddleware(verifier TokenVerifier, roles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		idToken, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(idToken) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		token, err := verifier.VerifyIDToken(ctx, strings.TrimSpace(idToken))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid ID token"})
			c.Abort()
			return
		}

		role, err := roles.GetUserRole(ctx, token.UID)
		if err != nil {
			logging.Default().Error("failed to resolve role", "uid", token.UID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
			c.Abort()
			return
		}

		email, _ := token.Claims["email"].(string)
		SetSession(c, Session{UID: token.UID, Email: email, Role: role})

		c.Next()
	}
}

// SetSession attaches s to the request.
func SetSession(c *gin.Context, s Session) {
	c.Set(sessionKey, s)
}

// SessionFrom returns the session set by AuthMiddleware.
func SessionFrom(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}

// RequireRole rejects callers whose role is not in roles.
func RequireRole(roles ...league.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := SessionFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			c.Abort()
			return
		}
		for _, r := range roles {
			if s.Role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}
