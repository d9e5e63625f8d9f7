package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Init(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS orders (
	id           TEXT          PRIMARY KEY,
	created_at   TIMESTAMPTZ   NOT NULL,
	total_amount NUMERIC(14,2) NOT NULL CHECK (total_amount >= 0)
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at, id);
`
	_, err := s.pool.Exec(ctx, ddl)
	return err
}

// ListOrders implements service.OrderLister. Zero From/To hints are ignored.
func (s *Store) ListOrders(ctx context.Context, req entity.PageRequest) (entity.OrderPage, error) {
	if req.Page < 1 || req.Limit < 1 {
		return entity.OrderPage{}, fmt.Errorf("invalid page request page=%d limit=%d", req.Page, req.Limit)
	}
	where, args := windowClause(req.From, req.To)

	var total int64
	if err := s.pool.QueryRow(ctx, "SELECT count(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return entity.OrderPage{}, err
	}

	n := len(args)
	q := fmt.Sprintf("SELECT id, created_at, total_amount FROM orders%s ORDER BY created_at, id LIMIT $%d OFFSET $%d", where, n+1, n+2)
	rows, err := s.pool.Query(ctx, q, append(args, req.Limit, (req.Page-1)*req.Limit)...)
	if err != nil {
		return entity.OrderPage{}, err
	}
	defer rows.Close()

	out := entity.OrderPage{Orders: make([]entity.Order, 0, req.Limit), Total: total}
	for rows.Next() {
		var (
			id     string
			ts     time.Time
			amount decimal.Decimal
		)
		if err := rows.Scan(&id, &ts, &amount); err != nil {
			return entity.OrderPage{}, err
		}
		out.Orders = append(out.Orders, entity.Order{ID: id, CreatedAt: ts, TotalAmount: amount})
	}
	if err := rows.Err(); err != nil {
		return entity.OrderPage{}, err
	}
	out.TotalPages = totalPages(total, req.Limit)
	return out, nil
}

func windowClause(from, to time.Time) (string, []any) {
	switch {
	case !from.IsZero() && !to.IsZero():
		return " WHERE created_at >= $1 AND created_at <= $2", []any{from, to}
	case !from.IsZero():
		return " WHERE created_at >= $1", []any{from}
	case !to.IsZero():
		return " WHERE created_at <= $1", []any{to}
	}
	return "", nil
}

func totalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func (s *Store) Close() { s.pool.Close() }
