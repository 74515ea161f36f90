package verify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricStructuresLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "algebra",
		Subsystem: "session",
		Name:      "structures_loaded_total",
		Help:      "Structures whose axioms were asserted into a solver session.",
	})

	metricVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "algebra",
		Subsystem: "session",
		Name:      "verifications_total",
		Help:      "Axiom verification calls by outcome.",
	}, []string{"outcome"})
)
