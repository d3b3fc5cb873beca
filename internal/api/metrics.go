package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pfennig_api_requests_total",
		Help: "API requests by endpoint and outcome.",
	}, []string{"endpoint", "status"})

	planDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pfennig_plan_duration_seconds",
		Help:    "Time spent computing a weekly plan.",
		Buckets: prometheus.DefBuckets,
	})

	simulationMonths = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pfennig_simulation_months",
		Help:    "Simulated payoff horizons in months.",
		Buckets: []float64{6, 12, 24, 60, 120, 240, 360},
	})
)
