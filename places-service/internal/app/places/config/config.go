package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	JWT        JWTConfig
	Cache      CacheConfig
	Reconciler ReconcilerConfig
}

type ServerConfig struct {
	Host string // по умолчанию 0.0.0.0
	Port string // по умолчанию 5000
}

type MongoDBConfig struct {
	URI             string
	Database        string
	Collection      string // коллекция городов с вложенными местами и отзывами
	UsersCollection string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string // формат host:port
	Topic   string   // топик событий мест и отзывов
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type CacheConfig struct {
	CityListTTL time.Duration // 0 отключает кеш списка городов
}

type ReconcilerConfig struct {
	Schedule string // cron-выражение, пустая строка отключает сверку рейтингов
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "5000"),
		},
		MongoDB: MongoDBConfig{
			URI:             getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:        getEnv("MONGODB_DATABASE", "foodplaces"),
			Collection:      getEnv("MONGODB_COLLECTION", "businesses"),
			UsersCollection: getEnv("MONGODB_USERS_COLLECTION", "users"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "place_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
			TTL:    getEnvDuration("JWT_TTL", 30*time.Minute),
		},
		Cache: CacheConfig{
			CityListTTL: getEnvDuration("CITY_CACHE_TTL", 5*time.Minute),
		},
		Reconciler: ReconcilerConfig{
			Schedule: getEnv("RATING_RECONCILE_SCHEDULE", "@every 15m"),
		},
	}

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("JWT_SECRET must not be empty")
	}

	return cfg, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
