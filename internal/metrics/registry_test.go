package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterArtifactGauge(t *testing.T) {
	provider, err := NewProvider("gauge_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	var count atomic.Int64
	count.Store(3)

	err = RegisterArtifactGauge(provider.MeterProvider(), "gauge_test", func() int {
		return int(count.Load())
	})
	require.NoError(t, err)

	scrape := func() string {
		w := httptest.NewRecorder()
		provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		return w.Body.String()
	}

	assert.Regexp(t, `gauge_test_artifacts(_\w+)?(\{[^}]*\})? 3`, scrape())

	count.Store(1)
	assert.Regexp(t, `gauge_test_artifacts(_\w+)?(\{[^}]*\})? 1`, scrape())
}
