package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogin_BasicAuth(t *testing.T) {
	s := newTestServer()
	s.auth.On("Login", mock.Anything, "ann", "secret1").Return(&entity.TokenResponse{Token: "jwt"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
	req.SetBasicAuth("ann", "secret1")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body entity.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "jwt", body.Token)
}

func TestLogin_JSONFallbackOnPost(t *testing.T) {
	s := newTestServer()
	s.auth.On("Login", mock.Anything, "ann", "secret1").Return(&entity.TokenResponse{Token: "jwt"}, nil)

	rec := s.do(http.MethodPost, "/api/login", "", map[string]string{"username": "ann", "password": "secret1"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_NoCredentials(t *testing.T) {
	s := newTestServer()
	s.auth.On("Login", mock.Anything, "", "").
		Return(nil, &service.Error{Kind: service.ErrUnauthorized, Message: "Authentication required"})

	rec := s.do(http.MethodGet, "/api/login", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
	assert.Equal(t, "Authentication required", decodeError(t, rec).Message)
}

func TestRegister_Created(t *testing.T) {
	s := newTestServer()
	s.auth.On("Register", mock.Anything, mock.MatchedBy(func(r *entity.RegisterRequest) bool {
		return r.Username == "ann" && r.Admin
	})).Return(&entity.User{Username: "ann", Email: "ann@example.com", PasswordHash: "hash", Admin: true}, nil)

	rec := s.do(http.MethodPost, "/api/register", "",
		`{"username":"ann","password":"secret1","email":"ann@example.com","name":"Ann","admin":true}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "hash"))
}

func TestRegister_Conflict(t *testing.T) {
	s := newTestServer()
	s.auth.On("Register", mock.Anything, mock.Anything).
		Return(nil, &service.Error{Kind: service.ErrConflict, Message: "Username or email already exists"})

	rec := s.do(http.MethodPost, "/api/register", "", map[string]string{"username": "ann"})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogout_RevokesPresentedToken(t *testing.T) {
	s := newTestServer()
	s.auth.On("Logout", mock.Anything, userToken).Return(nil)

	rec := s.do(http.MethodGet, "/api/logout", userToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	s.auth.AssertCalled(t, "Logout", mock.Anything, userToken)
}

func TestLogout_RequiresToken(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodGet, "/api/logout", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	s.auth.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}
