package repository

import (
	"context"
	"fmt"
	"time"

	"foodplaces/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist"

type redisTokenRepository struct {
	client *redis.Client
}

// NewRedisTokenRepository создает Redis репозиторий черного списка токенов
func NewRedisTokenRepository(client *redis.Client) TokenRepository {
	return &redisTokenRepository{client: client}
}

// AddToBlacklist добавляет токен в черный список до момента его истечения
func (r *redisTokenRepository) AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error {
	key := fmt.Sprintf("%s:%s", blacklistPrefix, token)

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Истекший токен и так не пройдет проверку
		return nil
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	err := r.client.Set(ctx, key, "1", ttl).Err()
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}

	return nil
}

// IsBlacklisted проверяет, отозван ли токен
func (r *redisTokenRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("%s:%s", blacklistPrefix, token)

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpExists)
	exists, err := r.client.Exists(ctx, key).Result()
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpExists)
		return false, fmt.Errorf("failed to check if token is blacklisted: %w", err)
	}

	return exists > 0, nil
}
