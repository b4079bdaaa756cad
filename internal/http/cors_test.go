package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"only separators", " , ,", nil},
		{"single", "http://localhost:3000", []string{"http://localhost:3000"}},
		{
			"production preset",
			" http://localhost:3000 , http://127.0.0.1:3000 ",
			[]string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseOrigins(tt.input))
		})
	}
}

func TestCreateCORSMiddleware_Nil(t *testing.T) {
	assert.Nil(t, createCORSMiddleware(false, "http://localhost:3000", discardLogger()))
	assert.Nil(t, createCORSMiddleware(true, "", discardLogger()))
	assert.Nil(t, createCORSMiddleware(true, " , ", discardLogger()))
}

func corsRouter(t *testing.T, origins string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	middleware := createCORSMiddleware(true, origins, discardLogger())
	require.NotNil(t, middleware)

	router := gin.New()
	router.Use(middleware)
	router.GET("/api/files", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"files": []string{}})
	})
	router.POST("/api/download/:file_id", func(c *gin.Context) {
		c.Header("Content-Disposition", "attachment; filename=exam.pdf")
		c.Data(http.StatusOK, "application/pdf", []byte("%PDF"))
	})
	return router
}

func TestCORS_AllowedOrigin(t *testing.T) {
	router := corsRouter(t, "http://localhost:3000,http://127.0.0.1:3000")

	req := httptest.NewRequest(http.MethodPost, "/api/download/exam_a", nil)
	req.Header.Set("Origin", "http://127.0.0.1:3000")
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://127.0.0.1:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestCORS_UnknownOriginRejected(t *testing.T) {
	router := corsRouter(t, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := serve(router, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	router := corsRouter(t, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodOptions, "/api/download/exam_a", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(router, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestCORS_Wildcard(t *testing.T) {
	router := corsRouter(t, "*")

	req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
	req.Header.Set("Origin", "https://anywhere.example.org")
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}
