package webhook

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Failure reasons recorded by Metrics.
const (
	ReasonRead    = "read"
	ReasonDecrypt = "decrypt"
	ReasonSink    = "sink"
)

// Metrics records webhook receiver counters.
type Metrics struct {
	events   *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics registers the webhook metrics on the provided registerer. A nil
// registerer yields a no-op Metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}

	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xmoney_webhook_events_total",
		Help: "Decrypted webhook events by transaction status.",
	}, []string{"status"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xmoney_webhook_failures_total",
		Help: "Rejected or undelivered webhook notifications by reason.",
	}, []string{"reason"})
	reg.MustRegister(events, failures)

	return &Metrics{
		events:   events,
		failures: failures,
	}
}

// IncEvent counts an accepted event.
func (m *Metrics) IncEvent(status string) {
	if m == nil || m.events == nil {
		return
	}

	m.events.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncFailure counts a failed delivery.
func (m *Metrics) IncFailure(reason string) {
	if m == nil || m.failures == nil {
		return
	}

	m.failures.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}

	return value
}
