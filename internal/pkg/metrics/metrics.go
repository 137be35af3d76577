// Package metrics exposes Prometheus instrumentation for the career
// readiness service. All metrics live on a custom registry so the
// scrape output stays limited to what the service itself reports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default bucket layout for latency histograms, in milliseconds.
var defaultLatencyBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// Manager owns every metric the service registers.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// HTTP surface.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Analysis pipeline.
	analysisRuns     *prometheus.CounterVec
	analysisStages   *prometheus.CounterVec
	analysisDuration prometheus.Histogram

	// Posting collection.
	postingsCollected *prometheus.CounterVec
	postingsDuplicate prometheus.Counter

	// Market snapshots and gap reports.
	marketSnapshots *prometheus.CounterVec
	gapReports      prometheus.Counter
	gapReadiness    prometheus.Histogram

	// Cache effectiveness.
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec

	// LLM calls.
	llmRequests *prometheus.CounterVec

	// WebSocket progress feed.
	wsConnections prometheus.Gauge
	wsEvents      prometheus.Counter
}

var globalManager *Manager

// Custom registry so the default Go runtime collectors stay out of the
// scrape output.
var customRegistry = prometheus.NewRegistry()

func init() {
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its metrics on the
// configured registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "career_compass",
		subsystem:        "api",
		histogramBuckets: defaultLatencyBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.analysisRuns = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "analysis_runs_total",
			Help:      "Total number of complete analysis runs by outcome",
		},
		[]string{"outcome"},
	)

	m.analysisStages = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "analysis_stage_results_total",
			Help:      "Total number of analysis stage results by stage and status",
		},
		[]string{"stage", "status"},
	)

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_duration_milliseconds",
		Help:      "Complete analysis pipeline duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.postingsCollected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "postings_collected_total",
			Help:      "Total number of job postings stored by source",
		},
		[]string{"source"},
	)

	m.postingsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "postings_duplicate_total",
		Help:      "Total number of job postings skipped as duplicates",
	})

	m.marketSnapshots = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "market_snapshots_total",
			Help:      "Total number of market requirement snapshots built by source",
		},
		[]string{"source"},
	)

	m.gapReports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gap_reports_total",
		Help:      "Total number of gap reports computed",
	})

	m.gapReadiness = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gap_readiness_score",
		Help:      "Distribution of overall readiness scores across gap reports",
		Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
	})

	m.cacheHits = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits by scope",
		},
		[]string{"scope"},
	)

	m.cacheMisses = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses by scope",
		},
		[]string{"scope"},
	)

	m.llmRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "llm_requests_total",
			Help:      "Total number of LLM calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	m.wsConnections = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "websocket_connections",
		Help:      "Current number of open WebSocket progress connections",
	})

	m.wsEvents = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "websocket_events_total",
		Help:      "Total number of progress events pushed over WebSocket",
	})
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordAnalysisRun counts one complete analysis run with its outcome.
func RecordAnalysisRun(outcome string) {
	globalManager.analysisRuns.WithLabelValues(outcome).Inc()
}

// RecordAnalysisStage counts one pipeline stage result.
func RecordAnalysisStage(stage, status string) {
	globalManager.analysisStages.WithLabelValues(stage, status).Inc()
}

// RecordAnalysisDuration records how long a complete analysis took, in
// milliseconds.
func RecordAnalysisDuration(durationMs float64) {
	globalManager.analysisDuration.Observe(durationMs)
}

// RecordPostingsCollected counts stored job postings. Ingestion lands
// whole batches, so the count arrives as a delta.
func RecordPostingsCollected(source string, count int) {
	if count <= 0 {
		return
	}
	globalManager.postingsCollected.WithLabelValues(source).Add(float64(count))
}

// RecordPostingsDuplicate counts postings skipped as re-deliveries.
func RecordPostingsDuplicate(count int) {
	if count <= 0 {
		return
	}
	globalManager.postingsDuplicate.Add(float64(count))
}

// RecordMarketSnapshot counts one rebuilt market requirements snapshot.
func RecordMarketSnapshot(source string) {
	globalManager.marketSnapshots.WithLabelValues(source).Inc()
}

// RecordGapReport counts one computed gap report and records its
// readiness score.
func RecordGapReport(readiness float64) {
	globalManager.gapReports.Inc()
	globalManager.gapReadiness.Observe(readiness)
}

// RecordCacheHit counts one cache hit for the given scope.
func RecordCacheHit(scope string) {
	globalManager.cacheHits.WithLabelValues(scope).Inc()
}

// RecordCacheMiss counts one cache miss for the given scope.
func RecordCacheMiss(scope string) {
	globalManager.cacheMisses.WithLabelValues(scope).Inc()
}

// RecordLLMRequest counts one LLM call.
func RecordLLMRequest(operation, outcome string) {
	globalManager.llmRequests.WithLabelValues(operation, outcome).Inc()
}

// WebsocketConnected increments the open connection gauge.
func WebsocketConnected() {
	globalManager.wsConnections.Inc()
}

// WebsocketDisconnected decrements the open connection gauge.
func WebsocketDisconnected() {
	globalManager.wsConnections.Dec()
}

// RecordWebsocketEvent counts one pushed progress event.
func RecordWebsocketEvent() {
	globalManager.wsEvents.Inc()
}

// GetRegistry returns the registry the service metrics are registered on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
