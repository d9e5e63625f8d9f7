package service

import (
	"context"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
)

// Pager walks an OrderLister page by page. Single use; only the maxPages
// ceiling sets Truncated.
type Pager struct {
	src      OrderLister
	req      entity.PageRequest
	maxPages int

	page      int
	done      bool
	truncated bool
	err       error
}

func NewPager(src OrderLister, req entity.PageRequest, maxPages int) *Pager {
	if req.Limit <= 0 {
		req.Limit = DefaultPageSize
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Pager{src: src, req: req, maxPages: maxPages}
}

func (p *Pager) Next(ctx context.Context) (entity.OrderPage, bool) {
	if p.done {
		return entity.OrderPage{}, false
	}
	if p.page >= p.maxPages {
		p.truncated = true
		p.done = true
		return entity.OrderPage{}, false
	}

	req := p.req
	req.Page = p.page + 1
	if err := ctx.Err(); err != nil {
		p.err = &PageFetchError{Page: req.Page, Err: err}
		p.done = true
		return entity.OrderPage{}, false
	}
	page, err := p.src.ListOrders(ctx, req)
	if err != nil {
		p.err = &PageFetchError{Page: req.Page, Err: err}
		p.done = true
		return entity.OrderPage{}, false
	}
	p.page = req.Page

	if len(page.Orders) < p.req.Limit {
		p.done = true
	}
	if page.TotalPages > 0 && p.page >= page.TotalPages {
		p.done = true
	}
	return page, true
}

func (p *Pager) Pages() int { return p.page }

func (p *Pager) Truncated() bool { return p.truncated }

func (p *Pager) Err() error { return p.err }
