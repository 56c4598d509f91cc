package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthCheck - проверка одной зависимости сервиса
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func MongoCheck(client *mongo.Client) HealthCheck {
	return HealthCheck{
		Name: "mongodb",
		Check: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}
}

func RedisCheck(client *redis.Client) HealthCheck {
	return HealthCheck{
		Name: "redis",
		Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

type HealthCheckHandler struct {
	checks []HealthCheck
}

func NewHealthCheckHandler(checks ...HealthCheck) *HealthCheckHandler {
	return &HealthCheckHandler{checks: checks}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

func (h *HealthCheckHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	overallStatus := "healthy"

	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			checks[check.Name] = "unhealthy: " + err.Error()
			overallStatus = "unhealthy"
		} else {
			checks[check.Name] = "healthy"
		}
	}

	status := http.StatusOK
	if overallStatus != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, HealthResponse{
		Status:    overallStatus,
		Checks:    checks,
		Timestamp: time.Now(),
	})
}

func (h *HealthCheckHandler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "alive")
}
