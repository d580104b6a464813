package incidents

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "incidentdesk"

var (
	incidentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "incidents",
			Name:      "created_total",
			Help:      "Total incidents created",
		},
		[]string{"source"},
	)

	incidentStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "incidents",
			Name:      "status_updates_total",
			Help:      "Total successful incident status updates by target status",
		},
		[]string{"status"},
	)
)

// recordIncidentCreated records a successfully committed incident creation.
func recordIncidentCreated(source string) {
	incidentsCreated.WithLabelValues(source).Inc()
}

// recordStatusUpdate records a successfully committed status update.
func recordStatusUpdate(status string) {
	incidentStatusUpdates.WithLabelValues(status).Inc()
}
