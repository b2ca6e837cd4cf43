package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockrest/internal/infrastructure/metrics"
)

func TestMetrics_Contadores(t *testing.T) {
	m := metrics.New()

	m.RemoteError("fetch_items")
	m.RemoteError("fetch_items")
	m.RemoteError("insert_log")
	m.Action("create")

	assert.Equal(t, 3, testutil.CollectAndCount(m.Registry(), metrics.MetricRemoteErrorsTotal, metrics.MetricActionsTotal))
}

func TestMetrics_HandlerExponeFormatoTexto(t *testing.T) {
	m := metrics.New()
	m.Action("stock_update")
	m.ObserveRefresh(150 * time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `stockrest_actions_total{action="stock_update"} 1`)
	assert.Contains(t, string(body), "stockrest_refresh_duration_seconds_count 1")
	assert.Contains(t, string(body), "go_goroutines")
}
