package handler

import (
	"context"
	"net/http"
	"strings"

	"foodplaces/places-service/internal/app/places/entity"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenHeader = "x-access-token"

	tokenKey    = "token"
	usernameKey = "username"
	adminKey    = "admin"
)

// TokenVerifier проверяет токен доступа и возвращает личность вызывающего
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*entity.Identity, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate читает токен из x-access-token или Authorization: Bearer
// и кладет имя пользователя и флаг администратора в контекст
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)

		identity, err := m.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(tokenKey, token)
		c.Set(usernameKey, identity.Username)
		c.Set(adminKey, identity.Admin)

		c.Next()
	}
}

// RequireAdmin пропускает только администраторов; ставится после Authenticate
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(usernameKey); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorResponse{
				Error:   CategoryUnauthorized,
				Message: "Token is missing",
			})
			return
		}

		if !c.GetBool(adminKey) {
			c.AbortWithStatusJSON(http.StatusForbidden, entity.ErrorResponse{
				Error:   CategoryForbidden,
				Message: "Admin privileges required",
			})
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(AccessTokenHeader)); token != "" {
		return token
	}

	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
