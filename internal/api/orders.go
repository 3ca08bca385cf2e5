package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopora/admin_console/internal/listquery"
)

// OrdersService groups the order endpoints.
type OrdersService struct {
	client *Client
}

// Search returns one page of orders for q. Both filter dimensions are always
// sent, empty when inactive, matching what the backend expects.
func (s *OrdersService) Search(ctx context.Context, q listquery.Query) (OrderPage, error) {
	if !q.DateFilter.Valid() {
		return OrderPage{}, fmt.Errorf("api: invalid date filter %q", q.DateFilter)
	}
	if !q.StatusFilter.Valid() {
		return OrderPage{}, fmt.Errorf("api: invalid status filter %q", q.StatusFilter)
	}

	v := q.Values()
	v.Set("dateFilter", string(q.DateFilter))
	v.Set("statusFilter", string(q.StatusFilter))

	var page OrderPage
	if err := s.client.get(ctx, "/api/orders/search", v, &page, true); err != nil {
		return OrderPage{}, err
	}
	if page.TotalOrders < 0 {
		return OrderPage{}, &DecodeError{Endpoint: "/api/orders/search", Err: fmt.Errorf("negative totalOrders %d", page.TotalOrders)}
	}
	if page.TotalPages < 1 {
		page.TotalPages = listquery.PageCount(page.TotalOrders, q.PageSize)
	}
	return page, nil
}

// Get fetches a single order, line items decoded.
func (s *OrdersService) Get(ctx context.Context, orderID string) (Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return Order{}, fmt.Errorf("api: order id is required")
	}

	var order Order
	if err := s.client.get(ctx, "/api/orders/"+url.PathEscape(orderID), nil, &order, true); err != nil {
		return Order{}, err
	}
	if order.ID == "" {
		return Order{}, &DecodeError{Endpoint: "/api/orders/" + orderID, Err: fmt.Errorf("response has no _id")}
	}
	return order, nil
}

// UpdateStatus sets the order's status and returns the backend's copy of the
// updated order. Identifiers are trimmed; pasted ids tend to carry whitespace.
func (s *OrdersService) UpdateStatus(ctx context.Context, orderID string, status Status) (Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return Order{}, fmt.Errorf("api: order id is required")
	}
	if !status.Valid() {
		return Order{}, fmt.Errorf("api: invalid order status %q", status)
	}

	body := map[string]string{"status": string(status)}
	var updated Order
	if err := s.client.put(ctx, "/api/orders/"+url.PathEscape(orderID)+"/status", body, &updated, true); err != nil {
		return Order{}, err
	}
	return updated, nil
}

// Delete removes the order.
func (s *OrdersService) Delete(ctx context.Context, orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return fmt.Errorf("api: order id is required")
	}
	return s.client.delete(ctx, "/api/orders/"+url.PathEscape(orderID), true)
}

// Count returns the dashboard aggregate: order count, revenue, new customers.
func (s *OrdersService) Count(ctx context.Context) (StoreStats, error) {
	var stats StoreStats
	if err := s.client.get(ctx, "/api/orders/count", nil, &stats, true); err != nil {
		return StoreStats{}, err
	}
	return stats, nil
}

// ListByUser returns a user's orders and their lifetime total paid.
func (s *OrdersService) ListByUser(ctx context.Context, userID string) (UserOrders, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return UserOrders{}, fmt.Errorf("api: user id is required")
	}

	var out UserOrders
	if err := s.client.get(ctx, "/api/orders/user/"+url.PathEscape(userID), nil, &out, true); err != nil {
		return UserOrders{}, err
	}
	return out, nil
}
