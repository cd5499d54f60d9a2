package otel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit_DisabledIsNoop(t *testing.T) {
	shutdown, err := Init(Config{ServiceName: "test"}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	shutdown()

	assert.NotNil(t, Tracer())
}

func TestQuery_ReturnsCallbackError(t *testing.T) {
	want := errors.New("boom")
	err := Query(context.Background(), DBSQLite, "select", "SELECT 1", func(context.Context) error {
		return want
	})
	assert.ErrorIs(t, err, want)
}

func TestMQHeaderCarrier(t *testing.T) {
	c := NewMQHeaderCarrier(nil)
	c.Set("traceparent", "00-abc-def-01")

	assert.Equal(t, "00-abc-def-01", c.Get("traceparent"))
	assert.Equal(t, "", c.Get("missing"))
	assert.Equal(t, []string{"traceparent"}, c.Keys())
}

func TestGinMiddleware_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}
