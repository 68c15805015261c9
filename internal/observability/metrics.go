package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ImageGenerations counts adapter calls by provider and outcome
	// (completed, failed, error).
	ImageGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_generations_total",
			Help: "Image generation attempts by provider and outcome.",
		},
		[]string{"provider", "status"},
	)

	// ImageGenerationDuration records provider latency in seconds.
	ImageGenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_generation_duration_seconds",
			Help:    "Duration of image generation calls in seconds.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider"},
	)

	// SessionsSwept counts sessions flipped to inactive.
	SessionsSwept = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_sessions_swept_total",
			Help: "Sessions marked inactive by the inactivity sweep.",
		},
	)
)

func init() {
	prometheus.MustRegister(ImageGenerations, ImageGenerationDuration, SessionsSwept)
}

// ObserveGeneration records one adapter call.
func ObserveGeneration(provider, status string, d time.Duration) {
	ImageGenerations.WithLabelValues(provider, status).Inc()
	ImageGenerationDuration.WithLabelValues(provider).Observe(d.Seconds())
}
