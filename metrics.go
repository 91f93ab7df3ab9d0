package entitlekit

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	accessDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "entitlekit",
			Name:      "access_decisions_total",
			Help:      "Access decisions by outcome and denial reason.",
		},
		[]string{"outcome", "reason"},
	)
)

func init() {
	prometheus.MustRegister(accessDecisionsTotal)
}

// observeDecision records one decision in the metrics. Labels carry the
// outcome and reason only; user and organization IDs are never used as
// label values.
func observeDecision(decision AccessDecision) {
	outcome := "denied"
	reason := decision.Reason
	if decision.Granted {
		outcome = "granted"
		reason = "granted"
	}
	accessDecisionsTotal.WithLabelValues(outcome, reason).Inc()
}
