package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var authEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "showfolio",
		Subsystem: "auth",
		Name:      "events_total",
		Help:      "Total number of auth-state changes, by event kind.",
	},
	[]string{"kind"},
)

// CountAuthEvent records one auth-state change. Intended as a session store
// subscriber.
func CountAuthEvent(kind string) {
	authEventsTotal.WithLabelValues(kind).Inc()
}
