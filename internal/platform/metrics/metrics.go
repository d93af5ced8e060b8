package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service registry and implements the planner and
// publisher metric hooks.
type Collector struct {
	reg *prometheus.Registry

	PlansTotal   *prometheus.CounterVec // outcome label: ok|input|cycle_exhausted|upstream|error
	PlanDuration prometheus.Histogram

	UpstreamCalls    *prometheus.CounterVec // op, result labels
	UpstreamDuration *prometheus.HistogramVec

	SegmentHours *prometheus.CounterVec // status label

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
	PublishDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		PlansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_plans_total",
			Help: "Trip plan requests by outcome.",
		}, []string{"outcome"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_plan_duration_seconds",
			Help:    "End-to-end duration of trip planning.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		UpstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_upstream_calls_total",
			Help: "Routing and geocoding calls by operation and result.",
		}, []string{"op", "result"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planner_upstream_duration_seconds",
			Help:    "Duration of routing and geocoding calls.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"op"}),
		SegmentHours: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_duty_hours_total",
			Help: "Simulated duty hours by status.",
		}, []string{"status"}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
	}

	reg.MustRegister(
		c.PlansTotal, c.PlanDuration,
		c.UpstreamCalls, c.UpstreamDuration,
		c.SegmentHours,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected, c.PublishDuration,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

func (c *Collector) ObservePlan(outcome string, d time.Duration) {
	c.PlansTotal.WithLabelValues(outcome).Inc()
	c.PlanDuration.Observe(d.Seconds())
}

func (c *Collector) ObserveUpstream(op string, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.UpstreamCalls.WithLabelValues(op, result).Inc()
	c.UpstreamDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (c *Collector) ObserveSegment(status string, hours float64) {
	if hours <= 0 {
		return
	}
	c.SegmentHours.WithLabelValues(status).Add(hours)
}

func (c *Collector) IncPublished() { c.NATSPublished.Inc() }
func (c *Collector) IncPublishErr() { c.NATSPublishErrs.Inc() }
func (c *Collector) ObservePublish(d time.Duration) { c.PublishDuration.Observe(d.Seconds()) }

func (c *Collector) SetNATSConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
		return
	}
	c.NATSConnected.Set(0)
}
