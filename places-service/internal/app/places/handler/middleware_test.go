package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/repository/mocks"
	"foodplaces/places-service/internal/app/places/service"
	"foodplaces/places-service/internal/app/places/util"
	"foodplaces/places-service/internal/app/places/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Хелпер для middleware поверх настоящего AuthService
func newTestAuthMiddleware() (*AuthMiddleware, *mocks.MockTokenRepository, *util.JWTManager) {
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)
	jwtManager := util.NewJWTManager("test-secret-key", 30*time.Minute)

	authService := service.NewAuthService(userRepo, tokenRepo, jwtManager, validation.New())
	return NewAuthMiddleware(authService), tokenRepo, jwtManager
}

func protectedRouter(m *AuthMiddleware, handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	chain := append([]gin.HandlerFunc{m.Authenticate()}, handlers...)
	router.GET("/protected", chain...)
	return router
}

func TestAuthenticate_AccessTokenHeader(t *testing.T) {
	middleware, tokenRepo, jwtManager := newTestAuthMiddleware()
	token, _, _ := jwtManager.GenerateToken("ann", false)
	tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(false, nil)

	router := protectedRouter(middleware, func(c *gin.Context) {
		assert.Equal(t, "ann", c.GetString(usernameKey))
		assert.False(t, c.GetBool(adminKey))
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AccessTokenHeader, token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	tokenRepo.AssertExpectations(t)
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	middleware, tokenRepo, jwtManager := newTestAuthMiddleware()
	token, _, _ := jwtManager.GenerateToken("root", true)
	tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(false, nil)

	router := protectedRouter(middleware, middleware.RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_Rejections(t *testing.T) {
	middleware, tokenRepo, jwtManager := newTestAuthMiddleware()

	revoked, _, _ := jwtManager.GenerateToken("ann", false)
	tokenRepo.On("IsBlacklisted", mock.Anything, revoked).Return(true, nil)
	expired, _, _ := util.NewJWTManager("test-secret-key", -time.Minute).GenerateToken("ann", false)

	testCases := []struct {
		name    string
		header  string
		value   string
		message string
	}{
		{"no token", "", "", "Token is missing"},
		{"wrong scheme", "Authorization", "Basic abc", "Token is missing"},
		{"garbage token", AccessTokenHeader, "abc", "Token is invalid"},
		{"expired token", AccessTokenHeader, expired, "Token has expired"},
		{"revoked token", AccessTokenHeader, revoked, "Token has been cancelled"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := protectedRouter(middleware, func(c *gin.Context) {
				t.Error("Handler should not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var resp entity.ErrorResponse
			json.Unmarshal(rec.Body.Bytes(), &resp)
			assert.Equal(t, CategoryUnauthorized, resp.Error)
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestAuthenticate_BlacklistFailure(t *testing.T) {
	middleware, tokenRepo, jwtManager := newTestAuthMiddleware()
	token, _, _ := jwtManager.GenerateToken("ann", false)
	tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(false, errors.New("redis down"))

	router := protectedRouter(middleware, func(c *gin.Context) {
		t.Error("Handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AccessTokenHeader, token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAdmin_WithoutAuthenticate(t *testing.T) {
	middleware, _, _ := newTestAuthMiddleware()

	router := gin.New()
	router.GET("/admin", middleware.RequireAdmin(), func(c *gin.Context) {
		t.Error("Handler should not be called")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	middleware, tokenRepo, jwtManager := newTestAuthMiddleware()
	token, _, _ := jwtManager.GenerateToken("ann", false)
	tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(false, nil)

	router := protectedRouter(middleware, middleware.RequireAdmin(), func(c *gin.Context) {
		t.Error("Handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AccessTokenHeader, token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var resp entity.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, CategoryForbidden, resp.Error)
}
