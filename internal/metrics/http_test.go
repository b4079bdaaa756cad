package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsRouter(t *testing.T) (*gin.Engine, *Provider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, provider.Shutdown(context.Background())) })

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))
	router.GET("/api/files", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"files": []string{}, "total_files": 0})
	})
	router.POST("/api/download/:file_id", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/pdf", []byte(strings.Repeat("x", 2048)))
	})
	router.DELETE("/api/delete/:file_id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})

	return router, provider
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	t.Run("records requests by route pattern", func(t *testing.T) {
		router, provider := newMetricsRouter(t)

		for _, id := range []string{"exam_a", "exam_b"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/download/"+id, nil))
			require.Equal(t, http.StatusOK, w.Code)
		}

		body := scrape(t, provider)
		assert.Contains(t, body, "test_app_http_requests_total")
		assert.Contains(t, body, `path="/api/download/:file_id"`)
		assert.NotContains(t, body, "exam_a")
		assert.Contains(t, body, "test_app_http_request_duration_seconds")
		assert.Contains(t, body, "test_app_http_response_size_bytes")
	})

	t.Run("records status codes", func(t *testing.T) {
		router, provider := newMetricsRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/delete/exam_a", nil))
		require.Equal(t, http.StatusNotFound, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/files", nil))
		require.Equal(t, http.StatusOK, w.Code)

		body := scrape(t, provider)
		assert.Contains(t, body, `status_code="404"`)
		assert.Contains(t, body, `status_code="200"`)
	})

	t.Run("unmatched route", func(t *testing.T) {
		router, provider := newMetricsRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
		require.Equal(t, http.StatusNotFound, w.Code)

		assert.Contains(t, scrape(t, provider), `path="unknown"`)
	})
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/api/verify/:file_id", "/api/verify/:file_id"},
		{"/", "/"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, routeLabel(tt.input))
		})
	}
}
