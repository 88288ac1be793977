package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var lifecycleDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "content_lifecycle_decisions_total",
		Help: "Content lifecycle operations by action and outcome.",
	},
	[]string{"action", "outcome"},
)

const (
	OutcomeAccepted = "accepted"
	OutcomeDenied   = "denied"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

func RecordLifecycleDecision(action, outcome string) {
	lifecycleDecisions.WithLabelValues(action, outcome).Inc()
}

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
