package service

import (
	"context"
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
	"github.com/dayanaadylkhanova/order-insights/pkg/metrics"
	"go.uber.org/zap"
)

type OrderFetcher interface {
	FetchAll(ctx context.Context, w entity.DateWindow) FetchResult
}

// Reporter runs resolve → fetch → aggregate → summarize for one selection.
type Reporter struct {
	log      *zap.Logger
	resolver *DateResolver
	fetcher  OrderFetcher
	clock    Clock
	metrics  *metrics.ReportMetrics
}

func NewReporter(log *zap.Logger, resolver *DateResolver, fetcher OrderFetcher, clock Clock, m *metrics.ReportMetrics) *Reporter {
	if clock == nil {
		clock = SystemClock
	}
	return &Reporter{log: log, resolver: resolver, fetcher: fetcher, clock: clock, metrics: m}
}

// GetReport only fails with ErrInvalidRange.
func (r *Reporter) GetReport(ctx context.Context, sel entity.RangeSelector) (entity.Snapshot, error) {
	started := time.Now()
	w, err := r.resolver.Resolve(sel)
	if err != nil {
		r.metrics.ObserveReport("invalid", time.Since(started))
		return entity.Snapshot{}, err
	}

	res := r.fetcher.FetchAll(ctx, w)
	snap := Summarize(Aggregate(res.Orders, w, r.resolver.Location()))
	snap.Range = sel.ID
	snap.Partial = res.Partial
	snap.FetchFailed = res.PageErr != nil
	snap.GeneratedAt = r.clock.Now()

	outcome := "ok"
	switch {
	case snap.FetchFailed:
		outcome = "degraded"
	case snap.Partial:
		outcome = "partial"
	}
	r.metrics.ObserveReport(outcome, time.Since(started))
	r.log.Debug("report built",
		zap.String("range", string(sel.ID)),
		zap.Time("start", w.Start),
		zap.Time("end", w.End),
		zap.Int("fetched", len(res.Orders)),
		zap.Int64("orders", snap.TotalOrders),
		zap.String("outcome", outcome),
	)
	return snap, nil
}
