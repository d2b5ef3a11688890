package llm

import "github.com/prometheus/client_golang/prometheus"

var (
	// completions counts provider calls by provider and outcome (ok|error).
	completions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_completions_total",
			Help: "Total number of completion requests by outcome.",
		},
		[]string{"provider", "outcome"},
	)

	// completionLat records provider round-trip time in seconds.
	completionLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_completion_duration_seconds",
			Help:    "Duration of completion requests in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"provider"},
	)

	// completionTokens accumulates token usage reported by the provider.
	completionTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Tokens consumed by completion requests.",
		},
		[]string{"provider", "kind"},
	)
)

func init() {
	prometheus.MustRegister(completions, completionLat, completionTokens)
}
