package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatherly/event-manager/internal/middleware"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandler_CorrelationIDAndUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var b bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&b, nil)))

	r := gin.New()
	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))

	var correlationID string
	r.GET("/test", func(c *gin.Context) {
		ctx := model.NewContextWithUser(c.Request.Context(), &model.User{ID: 7})
		c.Request = c.Request.WithContext(ctx)
		correlationID, _ = middleware.GetCorrelationID(ctx)

		// both the request logger and this call should carry the correlation id
		logger.InfoContext(c.Request.Context(), "info")
		c.String(http.StatusOK, "success")
	})

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/test", nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, correlationID)

	var lines int
	sc := bufio.NewScanner(&b)
	for sc.Scan() {
		lines++
		got := make(map[string]any)
		require.NoError(t, json.Unmarshal(sc.Bytes(), &got))

		v, ok := got[middleware.RequestLoggerKeyCorrelationID]
		assert.True(t, ok, "want log line to have key %q", middleware.RequestLoggerKeyCorrelationID)
		assert.Equal(t, correlationID, v)
	}
	assert.Equal(t, 2, lines)
}

func TestContextHandler_NoContextValues(t *testing.T) {
	var b bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&b, nil)))

	logger.Info("outside of a request")

	got := make(map[string]any)
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	_, ok := got[middleware.RequestLoggerKeyCorrelationID]
	assert.False(t, ok)
	_, ok = got[middleware.RequestLoggerKeyUser]
	assert.False(t, ok)
}
