package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

const (
	// TokenContextKey is a gin context key for the caller's auth token.
	TokenContextKey = "authToken"
	// UserIDContextKey is a gin context key for an authorized administrator id.
	UserIDContextKey = "userID"
	authCookieName   = "storefront_token"
)

// AdminAuthorizer resolves a token to an administrator id.
type AdminAuthorizer interface {
	AuthorizeAdmin(ctx context.Context, token string) (int64, error)
}

// TokenRequired rejects requests without a bearer token or auth cookie.
// Token validity is checked by the purchase engine.
func TokenRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure(domainErrors.ErrUnauthenticated.Error()))
			return
		}
		c.Set(TokenContextKey, token)
		c.Next()
	}
}

// AdminRequired allows only administrators through.
func AdminRequired(authorizer AdminAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		userID, err := authorizer.AuthorizeAdmin(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domainErrors.ErrUnauthenticated):
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure(err.Error()))
			case errors.Is(err, domainErrors.ErrForbidden):
				c.AbortWithStatusJSON(http.StatusForbidden, dto.Failure(err.Error()))
			default:
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Failure("internal server error"))
			}
			return
		}

		c.Set(TokenContextKey, token)
		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
