package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodplaces/pkg/logger"
	"foodplaces/places-service/internal/app/places/config"
	"foodplaces/places-service/internal/app/places/handler"
	"foodplaces/places-service/internal/app/places/infrastructure"
	"foodplaces/places-service/internal/app/places/infrastructure/cache"
	"foodplaces/places-service/internal/app/places/infrastructure/messaging"
	"foodplaces/places-service/internal/app/places/processor"
	"foodplaces/places-service/internal/app/places/repository"
	"foodplaces/places-service/internal/app/places/service"
	"foodplaces/places-service/internal/app/places/util"
	"foodplaces/places-service/internal/app/places/validation"
)

const serviceName = "places-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(serviceName, logLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, serviceName, logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	// === MONGODB ===
	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Str("collection", cfg.MongoDB.Collection).
		Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)
	cities := db.Collection(cfg.MongoDB.Collection)

	// === REDIS ===
	// черный список токенов и кеш списка городов
	redisClient, err := connectRedis(cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")

	// === KAFKA ===
	kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized Kafka producer")

	// === РЕПОЗИТОРИИ ===
	cityRepo := repository.NewCityRepository(cities)
	placeRepo := repository.NewPlaceRepository(cities)
	reviewRepo := repository.NewReviewRepository(cities)
	userRepo := repository.NewUserRepository(db.Collection(cfg.MongoDB.UsersCollection))
	tokenRepo := repository.NewRedisTokenRepository(redisClient)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := cityRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn().Err(err).Msg("Failed to ensure cities indexes")
	}
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn().Err(err).Msg("Failed to ensure users indexes")
	}
	indexCancel()

	var cityCache infrastructure.CityListCache
	if cfg.Cache.CityListTTL > 0 {
		cityCache = cache.NewRedisCityCache(redisClient, cfg.Cache.CityListTTL)
	} else {
		logger.Info().Msg("Cities list cache disabled")
	}

	// === СЕРВИСЫ ===
	validator := validation.New()
	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)

	cityService := service.NewCityService(cityRepo, validator, cityCache, kafkaProducer)
	placeService := service.NewPlaceService(cityRepo, placeRepo, validator, cityCache, kafkaProducer)
	reviewService := service.NewReviewService(reviewRepo, placeRepo, validator, cityCache, kafkaProducer)
	authService := service.NewAuthService(userRepo, tokenRepo, jwtManager, validator)

	// === СВЕРКА РЕЙТИНГОВ ===
	reconcileCtx, stopReconcile := context.WithCancel(context.Background())
	defer stopReconcile()

	var reconciler *processor.RatingReconciler
	if cfg.Reconciler.Schedule != "" {
		reconciler = processor.NewRatingReconciler(placeRepo, cityCache)
		if err := reconciler.Start(reconcileCtx, cfg.Reconciler.Schedule); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start rating reconciler")
		}
		logger.Info().Str("schedule", cfg.Reconciler.Schedule).Msg("Rating reconciler started")
	}

	// === HTTP ===
	router := handler.SetupRoutes(handler.Handlers{
		City:   handler.NewCityHandler(cityService),
		Place:  handler.NewPlaceHandler(placeService),
		Review: handler.NewReviewHandler(reviewService),
		Auth:   handler.NewAuthHandler(authService),
		Health: handler.NewHealthCheckHandler(
			handler.MongoCheck(mongoClient),
			handler.RedisCheck(redisClient),
		),
	}, handler.NewAuthMiddleware(authService))

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Places Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Places Service...")

	stopReconcile()
	if reconciler != nil {
		reconciler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Places Service stopped gracefully")
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		client, err = mongo.Connect(context.Background(), clientOptions)
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = client.Ping(pingCtx, nil)
			pingCancel()
			if err == nil {
				return client, nil
			}
			_ = client.Disconnect(context.Background())
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}

func connectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
