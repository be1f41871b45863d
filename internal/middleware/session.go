package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uks-api/internal/models"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
	"github.com/noah-isme/uks-api/pkg/response"
)

// ContextUserKey is the gin context key storing session claims.
const ContextUserKey = "currentUser"

// TokenValidator accepts a session token while its session is current.
type TokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// sessionToken reads the bearer header first and falls back to the session cookie.
func sessionToken(c *gin.Context, cookieName string) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header")
		}
		return strings.TrimSpace(parts[1]), nil
	}
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, nil
		}
	}
	return "", appErrors.ErrUnauthorized
}

// Session protects routes by requiring the token of the current session.
func Session(validator TokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := sessionToken(c, cookieName)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// OptionalSession attaches claims when a valid token is present but does not block.
func OptionalSession(validator TokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := sessionToken(c, cookieName)
		if err != nil {
			c.Next()
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims set by Session or OptionalSession.
func CurrentClaims(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}

// CurrentIdentity returns the identity of the current session, or nil when anonymous.
func CurrentIdentity(c *gin.Context) *models.UserInfo {
	claims := CurrentClaims(c)
	if claims == nil {
		return nil
	}
	identity := claims.Identity()
	return &identity
}
