package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := gin.New()
	r.Use(StructuredLoggingMiddleware(logger))
	r.GET("/sales/:id", func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), "cashier-1"))
		GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/s-1", nil)
	req.Header.Set("X-Request-ID", "req-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inner, done map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inner))
	require.NoError(t, json.Unmarshal(lines[1], &done))

	assert.Equal(t, "req-42", inner["request_id"])
	assert.Equal(t, "Request completed", done["msg"])
	assert.Equal(t, "WARN", done["level"])
	assert.Equal(t, float64(http.StatusNotFound), done["status"])
	assert.Equal(t, "cashier-1", done["actor"])
	assert.Equal(t, "/sales/s-1", done["path"])
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), GetLoggerFromCtx(context.Background()))
}
