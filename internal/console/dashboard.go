package console

import (
	"context"

	"github.com/shopora/admin_console/internal/api"
)

// Dashboard drives the landing view's aggregate numbers.
type Dashboard struct {
	orders *api.OrdersService
}

// NewDashboard returns a dashboard session.
func NewDashboard(orders *api.OrdersService) *Dashboard {
	return &Dashboard{orders: orders}
}

// Load fetches the store aggregates. An unauthenticated failure bubbles up
// unchanged so the caller can route the operator to login.
func (d *Dashboard) Load(ctx context.Context) (api.StoreStats, error) {
	return d.orders.Count(ctx)
}
