package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestReportMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReportMetrics(reg)

	m.AddPages(3)
	m.AddPages(0)
	m.IncPartial()
	m.IncPageFailure()
	m.IncPageFailure()
	m.IncStaleDiscarded()
	m.ObserveReport("ok", 20*time.Millisecond)

	if got := testutil.ToFloat64(m.pages); got != 3 {
		t.Fatalf("expected 3 pages, got %v", got)
	}
	if got := testutil.ToFloat64(m.partial); got != 1 {
		t.Fatalf("expected 1 partial, got %v", got)
	}
	if got := testutil.ToFloat64(m.pageFailures); got != 2 {
		t.Fatalf("expected 2 page failures, got %v", got)
	}
	if got := testutil.ToFloat64(m.staleDiscarded); got != 1 {
		t.Fatalf("expected 1 stale discard, got %v", got)
	}
	if n := testutil.CollectAndCount(m.duration); n != 1 {
		t.Fatalf("expected 1 histogram series, got %d", n)
	}
}

func TestReportMetrics_NilSafe(t *testing.T) {
	var m *ReportMetrics
	m.AddPages(1)
	m.IncPartial()
	m.IncPageFailure()
	m.IncStaleDiscarded()
	m.ObserveReport("ok", time.Second)

	inert := NewReportMetrics(nil)
	inert.AddPages(1)
	inert.ObserveReport("", time.Second)
}
