package webhook_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/xmoney-go/internal/webhook"
)

func TestMetricsExportsCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := webhook.NewMetrics(reg)

	metrics.IncEvent("complete-ok")
	metrics.IncEvent("complete-ok")
	metrics.IncEvent("")
	metrics.IncFailure(webhook.ReasonDecrypt)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	assert.InDelta(t, 2, counterValue(t, mfs, "xmoney_webhook_events_total", "status", "complete-ok"), 0)
	assert.InDelta(t, 1, counterValue(t, mfs, "xmoney_webhook_events_total", "status", "unknown"), 0)
	assert.InDelta(t, 1, counterValue(t, mfs, "xmoney_webhook_failures_total", "reason", "decrypt"), 0)
}

func TestMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var metrics *webhook.Metrics

	metrics.IncEvent("complete-ok")
	metrics.IncFailure(webhook.ReasonSink)

	webhook.NewMetrics(nil).IncEvent("complete-ok")
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, name, label, value string) float64 {
	t.Helper()

	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}

		for _, metric := range mf.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}

	t.Fatalf("metric %s{%s=%q} not found", name, label, value)

	return 0
}
