package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodplaces/pkg/metrics"
	"foodplaces/places-service/internal/app/places/entity"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName = "places-service"
	keyPrefix   = "cities"
	versionKey  = "cities:version"
)

// RedisCityCache кеширует страницы списка городов. Ключи включают номер
// версии, инвалидация увеличивает версию, и старые ключи истекают по TTL.
// Версия читается один раз в Key: страница, прочитанная из базы до
// инвалидации, записывается под старой версией и сразу недоступна
type RedisCityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCityCache(client *redis.Client, ttl time.Duration) *RedisCityCache {
	return &RedisCityCache{client: client, ttl: ttl}
}

func (c *RedisCityCache) version(ctx context.Context) (int64, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	v, err := c.client.Get(ctx, versionKey).Int64()
	timer.ObserveDuration()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return 0, fmt.Errorf("failed to get cache version: %w", err)
	}
	return v, nil
}

// Key возвращает ключ страницы для текущей версии кеша
func (c *RedisCityCache) Key(ctx context.Context, key string) (string, error) {
	v, err := c.version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:list:v%d:%s", keyPrefix, v, key), nil
}

func (c *RedisCityCache) Get(ctx context.Context, versionedKey string) (*entity.CityListResult, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	data, err := c.client.Get(ctx, versionedKey).Bytes()
	timer.ObserveDuration()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(serviceName, keyPrefix)
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get cities from cache: %w", err)
	}

	var result entity.CityListResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cities: %w", err)
	}

	metrics.RecordCacheHit(serviceName, keyPrefix)
	return &result, nil
}

func (c *RedisCityCache) Set(ctx context.Context, versionedKey string, result *entity.CityListResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal cities: %w", err)
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	err = c.client.Set(ctx, versionedKey, data, c.ttl).Err()
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set cities in cache: %w", err)
	}

	return nil
}

// Invalidate делает недоступными все сохранённые страницы
func (c *RedisCityCache) Invalidate(ctx context.Context) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	err := c.client.Incr(ctx, versionKey).Err()
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to invalidate cities cache: %w", err)
	}
	return nil
}
