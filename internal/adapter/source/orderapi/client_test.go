package orderapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_ListOrders(t *testing.T) {
	from := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 15, 23, 59, 59, 999000000, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		assert.Equal(t, "2025-10-15T23:59:59.999Z", r.URL.Query().Get("to"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orders":[
			{"id":"o1","createdAt":"2025-10-15T09:15:00Z","totalAmount":200},
			{"id":"o2","createdAt":"2025-10-15T19:30:00Z","totalAmount":"300.50"}
		],"totalPages":3,"total":2002}`))
	}))
	defer srv.Close()

	c := New(zap.NewNop(), srv.URL+"/", "secret", time.Second)
	page, err := c.ListOrders(context.Background(), entity.PageRequest{Page: 2, Limit: 1000, From: from, To: to})
	require.NoError(t, err)
	require.Len(t, page.Orders, 2)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(2002), page.Total)
	assert.Equal(t, "o1", page.Orders[0].ID)
	assert.Equal(t, "200", page.Orders[0].TotalAmount.String())
	assert.Equal(t, "300.5", page.Orders[1].TotalAmount.String())
	assert.True(t, page.Orders[1].CreatedAt.Equal(time.Date(2025, 10, 15, 19, 30, 0, 0, time.UTC)))
}

func TestClient_ListOrders_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"orders":`))
	}))
	defer srv.Close()

	c := New(zap.NewNop(), srv.URL, "", time.Second)
	_, err := c.ListOrders(context.Background(), entity.PageRequest{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")

	_, err = c.ListOrders(context.Background(), entity.PageRequest{Page: 2, Limit: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode page 2")
}
