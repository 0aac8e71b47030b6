package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/core/router"
	"github.com/dmitrymomot/promisemux/pkg/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserveCountsOutcomes(t *testing.T) {
	t.Parallel()

	m := metrics.New("test")
	mux := promisemux.NewDefault(promisemux.WithObserver(m.Observe))
	mux.Use("", func(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
		return nil, nil
	})
	mux.Get("/x", func(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
		return promisemux.Resolve("ok"), nil
	})

	handler := m.Instrument(mux)
	for range 2 {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	out := scrape(t, m)
	assert.Contains(t, out, `test_handler_invocations_total{deferred="false",kind="middleware",outcome="continued"} 2`)
	assert.Contains(t, out, `test_handler_invocations_total{deferred="true",kind="route",outcome="finalized"} 2`)
	assert.Contains(t, out, `test_http_requests_total{method="GET",status="200"} 2`)
	assert.Contains(t, out, "test_handler_settle_duration_seconds_bucket")
	assert.Contains(t, out, "test_http_inflight_requests 0")
}

func TestInstrumentRecordsStatus(t *testing.T) {
	t.Parallel()

	m := metrics.New("status")
	handler := m.Instrument(promisemux.NewDefault())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Contains(t, scrape(t, m), `status_http_requests_total{method="POST",status="404"} 1`)
}
