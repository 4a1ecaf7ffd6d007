package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "credit_risk_api",
			Name:      "predictions_total",
			Help:      "Prediction requests by final status",
		},
		[]string{"status"},
	)

	PredictionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "credit_risk_api",
			Name:      "prediction_failures_total",
			Help:      "Failed predictions by pipeline stage",
		},
		[]string{"stage"},
	)

	PredictionLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "credit_risk_api",
			Name:      "prediction_duration_seconds",
			Help:      "Time spent in the inference pipeline, excluding request binding",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5},
		},
	)

	PredictionProbability = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "credit_risk_api",
			Name:      "prediction_probability",
			Help:      "Distribution of predicted default probabilities",
			Buckets:   prometheus.LinearBuckets(0.05, 0.05, 19),
		},
	)
)
