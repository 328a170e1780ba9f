// Package metrics encapsulates Prometheus instrumentation for the
// generation service, adapted from the teacher's MetricsService: HTTP
// request metrics and cache hit-ratio tracking are kept verbatim in shape,
// and generation-specific collectors (runs, restarts, saturation stops,
// search duration) are added for the scheduler domain.
package metrics

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every Prometheus collector the service registers.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	cacheLatency  prometheus.Observer
	cacheWrite    prometheus.Observer
	cacheHitRatio prometheus.Gauge
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter

	runsStarted     prometheus.Counter
	runsFailed      prometheus.Counter
	schedulesFound  prometheus.Counter
	restartsTotal   prometheus.Counter
	saturationStops prometheus.Counter
	searchDuration  prometheus.Histogram

	cacheHitCount   uint64
	cacheMissCount  uint64
	requestCount    uint64
	requestDurTotal uint64
}

// Snapshot is a point-in-time read of the aggregated counters, suitable for
// a lightweight status endpoint that doesn't want to scrape /metrics.
type Snapshot struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}

// New registers every collector against a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for compile-cache lookups",
		Buckets: prometheus.DefBuckets,
	})
	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for compile-cache writes",
		Buckets: prometheus.DefBuckets,
	})
	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of compile-cache hits to total lookups",
	})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{Name: "cache_hits_total", Help: "Total compile-cache hits"})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{Name: "cache_misses_total", Help: "Total compile-cache misses"})

	runsStarted := prometheus.NewCounter(prometheus.CounterOpts{Name: "generation_runs_started_total", Help: "Total generate() calls started"})
	runsFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "generation_runs_failed_total", Help: "Total generate() calls that returned a compile/resolution error"})
	schedulesFound := prometheus.NewCounter(prometheus.CounterOpts{Name: "generation_schedules_found_total", Help: "Total schedules returned across all runs"})
	restartsTotal := prometheus.NewCounter(prometheus.CounterOpts{Name: "generation_restarts_total", Help: "Total restart iterations performed"})
	saturationStops := prometheus.NewCounter(prometheus.CounterOpts{Name: "generation_saturation_stops_total", Help: "Total runs that terminated via saturation detection"})
	searchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "generation_duration_seconds",
		Help:    "Duration of a full generate() call",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 { return float64(runtime.NumGoroutine()) })

	registry.MustRegister(
		requestDuration, requestTotal,
		cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		runsStarted, runsFailed, schedulesFound, restartsTotal, saturationStops, searchDuration,
		goroutines,
	)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		cacheHitRatio:   cacheHitRatio,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		runsStarted:     runsStarted,
		runsFailed:      runsFailed,
		schedulesFound:  schedulesFound,
		restartsTotal:   restartsTotal,
		saturationStops: saturationStops,
		searchDuration:  searchDuration,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) })
	}
	return m.handler
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	label := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, label).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, label).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurTotal, uint64(duration.Nanoseconds()))
}

func (m *Metrics) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

func (m *Metrics) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordRun records the outcome of one generate() call: whether it errored,
// how many schedules it returned, and how long it took. Restart/saturation
// counts have their own methods, RecordRestart/RecordSaturationStop; nothing
// in this module calls them (the service passes the engine no progress
// callback), so those two counters stay at zero.
func (m *Metrics) RecordRun(scheduleCount int, failed bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.runsStarted.Inc()
	if failed {
		m.runsFailed.Inc()
	}
	m.schedulesFound.Add(float64(scheduleCount))
	m.searchDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordRestart() {
	if m == nil {
		return
	}
	m.restartsTotal.Inc()
}

func (m *Metrics) RecordSaturationStop() {
	if m == nil {
		return
	}
	m.saturationStops.Inc()
}

// Snapshot returns a lightweight JSON-able read of the aggregate counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurTotal)

	var cacheRatio float64
	if total := hits + misses; total > 0 {
		cacheRatio = float64(hits) / float64(total)
	}
	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}
	return Snapshot{
		CacheHitRatio:            cacheRatio,
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
