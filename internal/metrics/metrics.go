package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "redirect_manager"

var (
	ValidationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "validation_outcomes_total",
		Help:      "Total number of rule validation outcomes",
	}, []string{"outcome", "reason"})

	RuleDeletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rule_deletions_total",
		Help:      "Total number of rule deletions",
	}, []string{"result"})

	RulesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "rules_total",
		Help:      "Number of currently stored redirect rules",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "status"})
)

func IncValidationOutcome(outcome, reason string) {
	if reason == "" {
		reason = "none"
	}
	ValidationOutcomes.WithLabelValues(outcome, reason).Inc()
}

func IncRuleDeletion(result string) {
	RuleDeletions.WithLabelValues(result).Inc()
}

func SetRulesTotal(count float64) {
	RulesTotal.Set(count)
}

func ObserveRequest(route, status string, seconds float64) {
	RequestDuration.WithLabelValues(route, status).Observe(seconds)
}
