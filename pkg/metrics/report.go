package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReportMetrics records how report runs fetch and deliver. A nil receiver is
// a no-op so components can run without a registry.
type ReportMetrics struct {
	pages          prometheus.Counter
	partial        prometheus.Counter
	pageFailures   prometheus.Counter
	staleDiscarded prometheus.Counter
	duration       *prometheus.HistogramVec
}

// NewReportMetrics registers the report metrics on reg. A nil reg yields an
// inert collector.
func NewReportMetrics(reg prometheus.Registerer) *ReportMetrics {
	if reg == nil {
		return &ReportMetrics{}
	}
	m := &ReportMetrics{
		pages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "insights_order_pages_fetched_total",
			Help: "Order pages fetched from the listing source.",
		}),
		partial: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "insights_fetch_partial_total",
			Help: "Fetches truncated at the page ceiling.",
		}),
		pageFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "insights_fetch_page_failures_total",
			Help: "Page requests that failed and ended a fetch early.",
		}),
		staleDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "insights_stale_reports_discarded_total",
			Help: "Report results dropped because a newer request superseded them.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "insights_report_duration_seconds",
			Help:    "Duration of report builds in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.pages, m.partial, m.pageFailures, m.staleDiscarded, m.duration)
	return m
}

func (m *ReportMetrics) AddPages(n int) {
	if m == nil || m.pages == nil || n <= 0 {
		return
	}
	m.pages.Add(float64(n))
}

func (m *ReportMetrics) IncPartial() {
	if m == nil || m.partial == nil {
		return
	}
	m.partial.Inc()
}

func (m *ReportMetrics) IncPageFailure() {
	if m == nil || m.pageFailures == nil {
		return
	}
	m.pageFailures.Inc()
}

func (m *ReportMetrics) IncStaleDiscarded() {
	if m == nil || m.staleDiscarded == nil {
		return
	}
	m.staleDiscarded.Inc()
}

// ObserveReport records a report build under outcome ("ok", "partial",
// "degraded", "invalid").
func (m *ReportMetrics) ObserveReport(outcome string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.duration.WithLabelValues(outcome).Observe(d.Seconds())
}
