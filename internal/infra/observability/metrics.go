package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the portfolio API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	alertsCreated   *prometheus.CounterVec
	scansTotal      *prometheus.CounterVec
	milestonesFound prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfolio_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		storeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_store_errors_total",
				Help: "Total errors from the persistence layer.",
			},
			[]string{"store"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		alertsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_alerts_created_total",
				Help: "Total alerts created by type.",
			},
			[]string{"type"},
		),
		scansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_scans_total",
				Help: "Total anomaly/milestone scan runs by result.",
			},
			[]string{"result"},
		),
		milestonesFound: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "portfolio_milestones_detected_total",
				Help: "Total milestones newly detected.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrStoreError increments the persistence error counter.
func (m *Metrics) IncrStoreError(store string) {
	m.storeErrors.WithLabelValues(store).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrAlertCreated increments the alert counter for an alert type.
func (m *Metrics) IncrAlertCreated(alertType string) {
	m.alertsCreated.WithLabelValues(alertType).Inc()
}

// IncrScan increments the scan counter with a result label (success/error).
func (m *Metrics) IncrScan(result string) {
	m.scansTotal.WithLabelValues(result).Inc()
}

// AddMilestones records newly detected milestones.
func (m *Metrics) AddMilestones(n int) {
	m.milestonesFound.Add(float64(n))
}

// ScanSnapshot is a point-in-time view of scan activity for the
// GET /v1/metrics/scans endpoint.
type ScanSnapshot struct {
	TotalScans       int64   `json:"total_scans"`
	FailedScans      int64   `json:"failed_scans"`
	ErrorRate        float64 `json:"error_rate"`
	MissedRentAlerts int64   `json:"missed_rent_alerts"`
	MilestoneAlerts  int64   `json:"milestone_alerts"`
	MilestonesFound  int64   `json:"milestones_found"`
	Period           string  `json:"period"`
}

// GetScanSnapshot reads the cumulative scan counters back out of Prometheus.
func (m *Metrics) GetScanSnapshot() *ScanSnapshot {
	success := getCounterValue(m.scansTotal, "success")
	failed := getCounterValue(m.scansTotal, "error")
	total := success + failed

	errorRate := float64(0)
	if total > 0 {
		errorRate = failed / total
	}

	return &ScanSnapshot{
		TotalScans:       int64(total),
		FailedScans:      int64(failed),
		ErrorRate:        errorRate,
		MissedRentAlerts: int64(getCounterValue(m.alertsCreated, "missed_rent")),
		MilestoneAlerts:  int64(getCounterValue(m.alertsCreated, "milestone")),
		MilestonesFound:  int64(counterValue(m.milestonesFound)),
		Period:           "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	return counterValue(cv.WithLabelValues(label))
}

func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
