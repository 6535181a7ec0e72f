package fraud

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "aegis",
		Subsystem: "fraud",
		Name:      "transactions_analyzed_total",
		Help:      "Number of transactions run through fraud analysis.",
	})

	fraudsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "aegis",
		Subsystem: "fraud",
		Name:      "frauds_detected_total",
		Help:      "Number of transactions classified as fraudulent.",
	})

	alertsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "aegis",
		Subsystem: "fraud",
		Name:      "alerts_created_total",
		Help:      "Number of fraud alerts created.",
	})

	duplicateAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "aegis",
		Subsystem: "fraud",
		Name:      "duplicate_alerts_total",
		Help:      "Number of alert creations skipped because the transaction already had one.",
	})
)
