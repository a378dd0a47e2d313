// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector is the interface the delivery and service layers record against.
type Collector interface {
	RecordBookingCreated()
	RecordBookingRejected(reason string)
	RecordScheduleRender(duration time.Duration)
	RecordICSExport()
	RecordHTTPStatus(statusCode int)
}

// PrometheusCollector implements Collector on a Prometheus registry.
type PrometheusCollector struct {
	bookingsCreated  prometheus.Counter
	bookingsRejected *prometheus.CounterVec
	scheduleRenders  prometheus.Counter
	renderLatency    prometheus.Histogram
	icsExports       prometheus.Counter
	httpStatus       *prometheus.CounterVec
}

// NewPrometheusCollector creates a collector and registers its metrics
// with the given registry.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "musicroom_bookings_created_total",
			Help: "Total number of bookings accepted.",
		}),
		bookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "musicroom_bookings_rejected_total",
			Help: "Total number of booking requests rejected, by reason.",
		}, []string{"reason"}),
		scheduleRenders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "musicroom_schedule_renders_total",
			Help: "Total number of schedule images rendered.",
		}),
		renderLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "musicroom_schedule_render_seconds",
			Help:    "Schedule render latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		icsExports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "musicroom_ics_exports_total",
			Help: "Total number of iCalendar feed exports.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "musicroom_http_requests_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.bookingsCreated,
		c.bookingsRejected,
		c.scheduleRenders,
		c.renderLatency,
		c.icsExports,
		c.httpStatus,
	)

	return c
}

func (c *PrometheusCollector) RecordBookingCreated() {
	c.bookingsCreated.Inc()
}

func (c *PrometheusCollector) RecordBookingRejected(reason string) {
	c.bookingsRejected.WithLabelValues(reason).Inc()
}

func (c *PrometheusCollector) RecordScheduleRender(duration time.Duration) {
	c.scheduleRenders.Inc()
	c.renderLatency.Observe(duration.Seconds())
}

func (c *PrometheusCollector) RecordICSExport() {
	c.icsExports.Inc()
}

func (c *PrometheusCollector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop is a Collector that records nothing, for tests.
type Nop struct{}

func (Nop) RecordBookingCreated()              {}
func (Nop) RecordBookingRejected(string)       {}
func (Nop) RecordScheduleRender(time.Duration) {}
func (Nop) RecordICSExport()                   {}
func (Nop) RecordHTTPStatus(int)               {}
