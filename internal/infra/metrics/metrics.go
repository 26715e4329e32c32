// Package metrics exposes distribution outcome counters on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeReplayed = "replayed"
	OutcomeSkipped  = "skipped"
)

type Recorder struct {
	distributions *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	return &Recorder{
		distributions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "eventcast_distributions_total",
			Help: "Distribution attempts by channel and outcome.",
		}, []string{"channel", "outcome"}),
		fallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "eventcast_fallback_attempts_total",
			Help: "Fallback attempts by channel.",
		}, []string{"channel"}),
	}
}

func (r *Recorder) Distribution(channelName, outcome string) {
	r.distributions.WithLabelValues(channelName, outcome).Inc()
}

func (r *Recorder) Fallback(channelName string) {
	r.fallbacks.WithLabelValues(channelName).Inc()
}
