package orderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
	"go.uber.org/zap"
)

// Client reads orders from the remote order-listing API:
//
//	GET {base}/orders?page=N&limit=M[&from=RFC3339&to=RFC3339]
//	→ {"orders":[{"id","createdAt","totalAmount"}], "totalPages":N, "total":N}
type Client struct {
	log   *zap.Logger
	base  string
	token string
	http  *http.Client
}

func New(log *zap.Logger, baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		log:   log,
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  &http.Client{Timeout: timeout},
	}
}

// ListOrders implements service.OrderLister.
func (c *Client) ListOrders(ctx context.Context, req entity.PageRequest) (entity.OrderPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("limit", strconv.Itoa(req.Limit))
	if !req.From.IsZero() {
		q.Set("from", req.From.Format(time.RFC3339Nano))
	}
	if !req.To.IsZero() {
		q.Set("to", req.To.Format(time.RFC3339Nano))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/orders?"+q.Encode(), nil)
	if err != nil {
		return entity.OrderPage{}, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return entity.OrderPage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return entity.OrderPage{}, fmt.Errorf("orders api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page entity.OrderPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return entity.OrderPage{}, fmt.Errorf("orders api: decode page %d: %w", req.Page, err)
	}
	c.log.Debug("orders page",
		zap.Int("page", req.Page),
		zap.Int("orders", len(page.Orders)),
		zap.Int("total_pages", page.TotalPages),
	)
	return page, nil
}
