package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Address())
	assert.Equal(t, "foodplaces", cfg.MongoDB.Database)
	assert.Equal(t, "businesses", cfg.MongoDB.Collection)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "@every 15m", cfg.Reconciler.Schedule)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8085")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("JWT_TTL", "10m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CITY_CACHE_TTL", "not-a-duration")
	t.Setenv("RATING_RECONCILE_SCHEDULE", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8085", cfg.Server.Port)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 5*time.Minute, cfg.Cache.CityListTTL)
	assert.Empty(t, cfg.Reconciler.Schedule)
}

func TestLoad_EmptySecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "  ")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
