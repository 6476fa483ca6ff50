// Package metrics exposes request and storefront counters in Prometheus format.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	adminController "github.com/junaidrashid-git/fishparque-api/controllers/admin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fishparque"

// Collector tracks HTTP traffic. Its zero value is not usable; call NewCollector.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewCollector() *Collector {
	return &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status code.",
			}, []string{"method", "route", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Time spent serving HTTP requests.",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			}, []string{"route"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.requests.Describe(ch)
	c.duration.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.requests.Collect(ch)
	c.duration.Collect(ch)
}

// Middleware records every request against its route template, so
// /api/orders/:email counts as one series.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		c.requests.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// StatsCollector reports the dashboard counters as gauges, read fresh on every scrape.
type StatsCollector struct {
	stats   func() adminController.Stats
	clients func() int

	totalOrders     *prometheus.Desc
	totalRevenue    *prometheus.Desc
	totalUsers      *prometheus.Desc
	pendingOrders   *prometheus.Desc
	pendingFeedback *prometheus.Desc
	liveClients     *prometheus.Desc
}

// NewStatsCollector reads counters from stats and the live feed size from clients.
func NewStatsCollector(stats func() adminController.Stats, clients func() int) *StatsCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &StatsCollector{
		stats:           stats,
		clients:         clients,
		totalOrders:     desc("orders", "Orders stored."),
		totalRevenue:    desc("revenue", "Sum of all order totals."),
		totalUsers:      desc("users", "Registered users."),
		pendingOrders:   desc("pending_orders", "Orders not yet delivered."),
		pendingFeedback: desc("pending_feedback", "Feedback without a reply."),
		liveClients:     desc("order_feed_clients", "Admin clients connected to the live order feed."),
	}
}

// Describe is part of the prometheus.Collector interface.
func (s *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- s.totalOrders
	ch <- s.totalRevenue
	ch <- s.totalUsers
	ch <- s.pendingOrders
	ch <- s.pendingFeedback
	ch <- s.liveClients
}

// Collect is part of the prometheus.Collector interface.
func (s *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	st := s.stats()
	ch <- prometheus.MustNewConstMetric(s.totalOrders, prometheus.GaugeValue, float64(st.TotalOrders))
	ch <- prometheus.MustNewConstMetric(s.totalRevenue, prometheus.GaugeValue, st.TotalRevenue)
	ch <- prometheus.MustNewConstMetric(s.totalUsers, prometheus.GaugeValue, float64(st.TotalUsers))
	ch <- prometheus.MustNewConstMetric(s.pendingOrders, prometheus.GaugeValue, float64(st.PendingOrders))
	ch <- prometheus.MustNewConstMetric(s.pendingFeedback, prometheus.GaugeValue, float64(st.PendingFeedback))
	ch <- prometheus.MustNewConstMetric(s.liveClients, prometheus.GaugeValue, float64(s.clients()))
}

// Handler serves everything registered with collectors on a private registry.
func Handler(collectors ...prometheus.Collector) gin.HandlerFunc {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors...)
	return gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}
