package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики обращений к API записей и работы контроллера.
var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "records_browser",
		Name:      "upstream_requests_total",
		Help:      "Requests issued to the records API, by outcome.",
	}, []string{"outcome"})

	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "records_browser",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of records API requests.",
		Buckets:   prometheus.DefBuckets,
	})

	SnapshotLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "records_browser",
		Name:      "snapshot_lookups_total",
		Help:      "Page snapshot cache lookups, by result.",
	}, []string{"result"})

	LoadsSuperseded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "records_browser",
		Name:      "loads_superseded_total",
		Help:      "Page loads discarded because a newer load replaced them.",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "records_browser",
		Name:      "active_sessions",
		Help:      "Browser sessions currently held in memory.",
	})
)

// Исходы запросов к API.
const (
	OutcomeOK        = "ok"
	OutcomeCancelled = "cancelled"
	OutcomeError     = "error"
)
