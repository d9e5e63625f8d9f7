package service

import (
	"context"
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
)

//go:generate mockgen -source=contracts.go -destination=contracts_mock.go -package=service

// OrderLister is the paginated order-listing collaborator. Pages start at 1.
type OrderLister interface {
	ListOrders(ctx context.Context, req entity.PageRequest) (entity.OrderPage, error)
}

// ReportPort builds one snapshot for a range selection.
type ReportPort interface {
	GetReport(ctx context.Context, sel entity.RangeSelector) (entity.Snapshot, error)
}

// SessionPort is the surface the transport needs from a report session.
type SessionPort interface {
	ID() string
	Select(ctx context.Context, sel entity.RangeSelector) (entity.SessionState, error)
	Refresh(ctx context.Context) (entity.SessionState, error)
	State() entity.SessionState
}

// SessionRegistry opens, finds and closes report sessions.
type SessionRegistry interface {
	Open() SessionPort
	Lookup(id string) (SessionPort, error)
	Close(id string) error
}

// Clock supplies "now" for relative ranges.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)
