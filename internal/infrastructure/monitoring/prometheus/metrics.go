package prometheus

import (
	"time"

	"github.com/turtacn/AnswerKey-Intelligence/internal/application/analysis"
)

// Default bucket layouts. Analysis durations are dominated by TF-IDF
// vectorization and stay well under a second for typical answers, so
// those buckets skew low.
var (
	DefaultHTTPDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultAnalysisDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
	DefaultSizeBuckets             = []float64{100, 500, 1_000, 5_000, 10_000, 50_000, 100_000}
	DefaultDBDurationBuckets       = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}
)

// AppMetrics bundles every application-level metric the service exposes.
type AppMetrics struct {
	// HTTP layer.
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPRequestSize     HistogramVec
	HTTPActiveRequests  GaugeVec

	// Analysis workflow.
	AnalysesTotal      CounterVec
	AnalysisDuration   HistogramVec
	ReferencesIngested CounterVec

	// Cache.
	CacheHits   CounterVec
	CacheMisses CounterVec

	// Database.
	DBQueryDuration HistogramVec
	DBConnections   GaugeVec

	// Messaging.
	EventsPublished CounterVec
}

// NewAppMetrics registers the application metrics on the given collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal: collector.RegisterCounter(
			"http_requests_total",
			"Total number of HTTP requests.",
			"method", "path", "status",
		),
		HTTPRequestDuration: collector.RegisterHistogram(
			"http_request_duration_seconds",
			"HTTP request latency in seconds.",
			DefaultHTTPDurationBuckets,
			"method", "path",
		),
		HTTPRequestSize: collector.RegisterHistogram(
			"http_request_size_bytes",
			"HTTP request body size in bytes.",
			DefaultSizeBuckets,
			"method", "path",
		),
		HTTPActiveRequests: collector.RegisterGauge(
			"http_active_requests",
			"Number of HTTP requests currently in flight.",
			"method",
		),
		AnalysesTotal: collector.RegisterCounter(
			"analyses_total",
			"Total number of answer analyses by outcome.",
			"outcome",
		),
		AnalysisDuration: collector.RegisterHistogram(
			"analysis_duration_seconds",
			"Time spent computing a full answer analysis.",
			DefaultAnalysisDurationBuckets,
		),
		ReferencesIngested: collector.RegisterCounter(
			"references_ingested_total",
			"Total number of reference answers ingested.",
		),
		CacheHits: collector.RegisterCounter(
			"cache_hits_total",
			"Total number of cache hits.",
			"cache",
		),
		CacheMisses: collector.RegisterCounter(
			"cache_misses_total",
			"Total number of cache misses.",
			"cache",
		),
		DBQueryDuration: collector.RegisterHistogram(
			"db_query_duration_seconds",
			"Database query latency in seconds.",
			DefaultDBDurationBuckets,
			"operation",
		),
		DBConnections: collector.RegisterGauge(
			"db_connections",
			"Database connections by state.",
			"state",
		),
		EventsPublished: collector.RegisterCounter(
			"events_published_total",
			"Total number of domain events published.",
			"topic",
		),
	}
}

// Recorder feeds analysis workflow metrics into AppMetrics.
type Recorder struct {
	metrics *AppMetrics
}

var _ analysis.Recorder = (*Recorder)(nil)

// NewRecorder wraps app metrics for use by the analysis service.
func NewRecorder(metrics *AppMetrics) *Recorder {
	return &Recorder{metrics: metrics}
}

func (r *Recorder) ObserveAnalysisDuration(d time.Duration) {
	r.metrics.AnalysisDuration.WithLabelValues().Observe(d.Seconds())
}

func (r *Recorder) IncAnalyses(outcome string) {
	r.metrics.AnalysesTotal.WithLabelValues(outcome).Inc()
}

func (r *Recorder) IncReferencesIngested() {
	r.metrics.ReferencesIngested.WithLabelValues().Inc()
}
