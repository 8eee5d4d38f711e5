package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	applicationTracker = "application_tracker"

	// Sync metrics
	messagesProcessedTotal = "messages_processed_total"
	eventsRecordedTotal    = "events_recorded_total"

	// Ledger metrics
	applicationsCreatedTotal = "applications_created_total"
	statusUpdatesTotal       = "status_updates_total"

	// Labels
	messageResultLabel = "result"
	eventTypeLabel     = "event_type"
	statusLabel        = "status"
)

var messagesProcessedLabels = []string{
	messageResultLabel,
}

var eventsRecordedLabels = []string{
	eventTypeLabel,
}

var statusUpdatesLabels = []string{
	statusLabel,
}

/**
* Metrics definition
**/
var messagesProcessedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: applicationTracker,
		Name:      messagesProcessedTotal,
		Help:      "number of mail messages handled by the ingestion run, by result",
	},
	messagesProcessedLabels,
)

var eventsRecordedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: applicationTracker,
		Name:      eventsRecordedTotal,
		Help:      "number of lifecycle events appended to the ledger, by event type",
	},
	eventsRecordedLabels,
)

var applicationsCreatedTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: applicationTracker,
		Name:      applicationsCreatedTotal,
		Help:      "number of application records created",
	},
)

var statusUpdatesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: applicationTracker,
		Name:      statusUpdatesTotal,
		Help:      "number of pipeline-approved status updates, by new status",
	},
	statusUpdatesLabels,
)

func IncreaseMessagesProcessedMetric(result string) {
	labels := prometheus.Labels{
		messageResultLabel: result,
	}
	messagesProcessedTotalMetric.With(labels).Inc()
}

func IncreaseEventsRecordedMetric(eventType string) {
	labels := prometheus.Labels{
		eventTypeLabel: eventType,
	}
	eventsRecordedTotalMetric.With(labels).Inc()
}

func IncreaseApplicationsCreatedMetric() {
	applicationsCreatedTotalMetric.Inc()
}

func IncreaseStatusUpdatesMetric(status string) {
	labels := prometheus.Labels{
		statusLabel: status,
	}
	statusUpdatesTotalMetric.With(labels).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(messagesProcessedTotalMetric)
	prometheus.MustRegister(eventsRecordedTotalMetric)
	prometheus.MustRegister(applicationsCreatedTotalMetric)
	prometheus.MustRegister(statusUpdatesTotalMetric)
}
