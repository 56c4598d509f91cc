package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestInitWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test-service", "warn", &buf)

	Info().Msg("hidden")
	assert.Empty(t, buf.String())

	Warn().Str("key", "value").Msg("visible")
	entry := lastEntry(t, &buf)
	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "visible", entry["message"])
}

func TestInitWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test-service", "verbose", &buf)

	Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	Info().Msg("visible")
	assert.Equal(t, "visible", lastEntry(t, &buf)["message"])
}

func TestGinLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test-service", "debug", &buf)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinLoggerMiddleware())
	router.GET("/items", func(c *gin.Context) {
		c.Set("username", "ann")
		assert.Equal(t, "req-42", RequestID(c))
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/items?pn=2", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))

	entry := lastEntry(t, &buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "/items", entry["path"])
	assert.Equal(t, "pn=2", entry["query"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, "ann", entry["username"])
}

func TestGinLoggerMiddleware_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test-service", "info", &buf)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinLoggerMiddleware())
	router.GET("/items", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))

	requestID := rec.Header().Get(RequestIDHeader)
	assert.Len(t, requestID, 36)
	assert.Equal(t, requestID, lastEntry(t, &buf)["request_id"])
}
