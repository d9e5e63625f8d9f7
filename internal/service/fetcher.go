package service

import (
	"context"
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
	"github.com/dayanaadylkhanova/order-insights/pkg/metrics"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 1000
	DefaultMaxPages = 50
)

type FetchResult struct {
	Orders  []entity.Order
	Pages   int
	Partial bool
	PageErr error // *PageFetchError
}

// Warning returns ErrPartialFetch for truncated results, else PageErr.
func (r FetchResult) Warning() error {
	if r.Partial {
		return ErrPartialFetch
	}
	return r.PageErr
}

type Fetcher struct {
	log      *zap.Logger
	src      OrderLister
	pageSize int
	maxPages int
	timeout  time.Duration
	metrics  *metrics.ReportMetrics
}

func NewFetcher(log *zap.Logger, src OrderLister, pageSize, maxPages int, timeout time.Duration, m *metrics.ReportMetrics) *Fetcher {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Fetcher{log: log, src: src, pageSize: pageSize, maxPages: maxPages, timeout: timeout, metrics: m}
}

// FetchAll never fails: a page error ends the walk and keeps what was read.
func (f *Fetcher) FetchAll(ctx context.Context, w entity.DateWindow) FetchResult {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	pager := NewPager(f.src, entity.PageRequest{Limit: f.pageSize, From: w.Start, To: w.End}, f.maxPages)
	var orders []entity.Order
	for {
		page, ok := pager.Next(ctx)
		if !ok {
			break
		}
		orders = append(orders, page.Orders...)
	}

	res := FetchResult{Orders: orders, Pages: pager.Pages(), Partial: pager.Truncated(), PageErr: pager.Err()}
	f.metrics.AddPages(res.Pages)
	if res.Partial {
		f.metrics.IncPartial()
		f.log.Warn("order fetch truncated at page ceiling",
			zap.Int("pages", res.Pages),
			zap.Int("orders", len(orders)),
		)
	}
	if res.PageErr != nil {
		f.metrics.IncPageFailure()
		f.log.Warn("order page fetch failed, using pages collected so far",
			zap.Error(res.PageErr),
			zap.Int("pages", res.Pages),
			zap.Int("orders", len(orders)),
		)
	}
	return res
}
