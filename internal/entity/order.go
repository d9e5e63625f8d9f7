package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a read-only order record as delivered by the order-listing source.
type Order struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// PageRequest asks the order source for one page. From/To are hints; a source
// may ignore them, inclusion is decided by the aggregator.
type PageRequest struct {
	Page  int
	Limit int
	From  time.Time
	To    time.Time
}

// OrderPage is one page returned by the order source. TotalPages and Total are
// zero when the source does not report them.
type OrderPage struct {
	Orders     []Order `json:"orders"`
	TotalPages int     `json:"totalPages,omitempty"`
	Total      int64   `json:"total,omitempty"`
}
