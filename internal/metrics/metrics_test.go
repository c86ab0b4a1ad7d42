package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/atbot/internal/metrics"
)

func TestCounters(t *testing.T) {
	t.Parallel()
	m := metrics.New()

	m.ObserveDispatch("@choose", metrics.OutcomeReplied)
	m.ObserveDispatch("@choose", metrics.OutcomeReplied)
	m.ObserveStoreError("save")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Dispatches().WithLabelValues("@choose", metrics.OutcomeReplied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreErrors().WithLabelValues("save")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveDispatch("@iam", metrics.OutcomeReplied)
		m.ObserveStoreError("load")
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	m.ObserveDispatch("@whois", metrics.OutcomeReplied)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `atbot_dispatches_total{outcome="replied",verb="@whois"} 1`), body)
}
