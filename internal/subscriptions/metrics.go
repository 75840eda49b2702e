package subscriptions

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restockwatch"

var (
	subscribesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscriptions",
			Name:      "subscribes_total",
			Help:      "Subscribe requests by outcome",
		},
		[]string{"outcome"},
	)

	orphanedDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscriptions",
			Name:      "orphaned_dropped_total",
			Help:      "Subscriptions dropped from list responses because their product no longer exists",
		},
	)
)

func recordSubscribe(outcome string) {
	subscribesTotal.WithLabelValues(outcome).Inc()
}

func recordOrphansDropped(count int) {
	orphanedDropped.Add(float64(count))
}
