package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodplaces/pkg/logger"
	"foodplaces/pkg/metrics"
	"foodplaces/places-service/internal/app/places/entity"
	"foodplaces/places-service/internal/app/places/repository"
	"foodplaces/places-service/internal/app/places/util"
	"foodplaces/places-service/internal/app/places/validation"
)

// AuthService выдает, проверяет и отзывает токены доступа
type AuthService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	jwtManager *util.JWTManager
	validator  *validation.Validator
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	jwtManager *util.JWTManager,
	validator *validation.Validator,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtManager: jwtManager,
		validator:  validator,
	}
}

// Register регистрирует пользователя; повтор username или email - Conflict
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, newError(ErrInternal, "failed to hash password", err)
	}

	user := &entity.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: passwordHash,
		Admin:        req.Admin,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fromRepository(err, "create user")
	}

	metrics.AuthRegistrations.Inc()
	logger.Info().Str("username", user.Username).Bool("admin", user.Admin).Msg("user registered")

	return user, nil
}

// Login проверяет учетные данные и выдает токен
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.TokenResponse, error) {
	if username == "" || password == "" {
		metrics.AuthLogins.WithLabelValues("failed").Inc()
		return nil, newError(ErrUnauthorized, "Authentication required", nil)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			return nil, newError(ErrUnauthorized, "Bad username or password", err)
		}
		return nil, fromRepository(err, "get user")
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		metrics.AuthLogins.WithLabelValues("failed").Inc()
		return nil, newError(ErrUnauthorized, "Bad username or password", nil)
	}

	token, _, err := s.jwtManager.GenerateToken(user.Username, user.Admin)
	if err != nil {
		return nil, newError(ErrInternal, "failed to generate token", err)
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()
	return &entity.TokenResponse{Token: token}, nil
}

// Logout отзывает токен до момента его истечения
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return newError(ErrUnauthorized, "Token is invalid", err)
	}

	expiresAt := time.Now().Add(s.jwtManager.TokenDuration())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := s.tokenRepo.AddToBlacklist(ctx, token, expiresAt); err != nil {
		return newError(ErrInternal, fmt.Sprintf("failed to revoke token: %v", err), err)
	}

	logger.Info().Str("username", claims.User).Msg("user logged out")
	return nil
}

// Verify проверяет токен и черный список, возвращает личность вызывающего
func (s *AuthService) Verify(ctx context.Context, token string) (*entity.Identity, error) {
	if token == "" {
		return nil, newError(ErrUnauthorized, "Token is missing", nil)
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		if errors.Is(err, util.ErrExpiredToken) {
			return nil, newError(ErrUnauthorized, "Token has expired", err)
		}
		return nil, newError(ErrUnauthorized, "Token is invalid", err)
	}

	revoked, err := s.tokenRepo.IsBlacklisted(ctx, token)
	if err != nil {
		return nil, newError(ErrInternal, fmt.Sprintf("failed to check token: %v", err), err)
	}
	if revoked {
		return nil, newError(ErrUnauthorized, "Token has been cancelled", nil)
	}

	return &entity.Identity{Username: claims.User, Admin: claims.Admin}, nil
}
