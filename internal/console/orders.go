package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopora/admin_console/internal/api"
	"github.com/shopora/admin_console/internal/listquery"
)

// ordersPageSize matches the orders search endpoint's page size.
const ordersPageSize = 10

// OrdersList drives the orders list view: search, date and status filters,
// pagination, the inline Pending/Completed toggle and deletion.
type OrdersList struct {
	*ListSession[api.Order]
	orders  *api.OrdersService
	confirm Confirmer
}

// NewOrdersList returns an orders list session. Nothing is fetched until the
// first Refresh (or any other navigation call).
func NewOrdersList(orders *api.OrdersService, confirm Confirmer, log zerolog.Logger) *OrdersList {
	l := &OrdersList{orders: orders, confirm: confirm}
	l.ListSession = newListSession(listquery.New(ordersPageSize),
		func(ctx context.Context, q listquery.Query) ([]api.Order, int, int, error) {
			page, err := orders.Search(ctx, q)
			if err != nil {
				return nil, 0, 0, err
			}
			return page.Orders, page.TotalOrders, page.TotalPages, nil
		}, log)
	return l
}

// ToggleOrderStatus flips the order between Pending and Completed. The row is
// patched in place only after the backend confirms the update; on failure the
// displayed status stays authoritative.
func (l *OrdersList) ToggleOrderStatus(ctx context.Context, orderID string) (api.Status, error) {
	orderID = strings.TrimSpace(orderID)
	current, ok := l.find(func(o api.Order) bool { return o.ID == orderID })
	if !ok {
		return "", fmt.Errorf("console: order %q is not on the current page", orderID)
	}

	next := current.Status.Next()
	if _, err := l.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return "", err
	}

	l.reconcile(
		func(o api.Order) bool { return o.ID == orderID },
		func(o api.Order) api.Order { o.Status = next; return o },
	)
	return next, nil
}

// DeleteOrder removes the order after an explicit confirmation. It reports
// whether the deletion went ahead; a declined confirmation performs no
// request and no state change.
func (l *OrdersList) DeleteOrder(ctx context.Context, orderID string) (bool, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return false, fmt.Errorf("console: order id is required")
	}
	if !l.confirm.Confirm("Are you sure you want to delete this order?") {
		return false, nil
	}
	if err := l.orders.Delete(ctx, orderID); err != nil {
		return false, err
	}
	l.remove(func(o api.Order) bool { return o.ID == orderID })
	return true, nil
}

// OrderDetail drives the single-order view: full status selection and
// deletion with navigation back to the list.
type OrderDetail struct {
	orders  *api.OrdersService
	confirm Confirmer

	order  api.Order
	loaded bool
}

// NewOrderDetail returns an empty detail session; call Load first.
func NewOrderDetail(orders *api.OrdersService, confirm Confirmer) *OrderDetail {
	return &OrderDetail{orders: orders, confirm: confirm}
}

// Load fetches the order.
func (d *OrderDetail) Load(ctx context.Context, orderID string) error {
	order, err := d.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	d.order = order
	d.loaded = true
	return nil
}

// Order returns the held order and whether one is loaded.
func (d *OrderDetail) Order() (api.Order, bool) {
	return d.order, d.loaded
}

// UpdateStatus sets the order to any status from the full enumeration. The
// held order is reconciled from the confirmed intent; when the backend
// returns the updated order, its copy wins.
func (d *OrderDetail) UpdateStatus(ctx context.Context, status api.Status) error {
	if !d.loaded {
		return fmt.Errorf("console: no order loaded")
	}
	updated, err := d.orders.UpdateStatus(ctx, d.order.ID, status)
	if err != nil {
		return err
	}
	if updated.ID == d.order.ID && updated.ID != "" {
		d.order = updated
	} else {
		d.order.Status = status
	}
	return nil
}

// Delete removes the order after confirmation. A true result tells the caller
// the order is gone and the view should navigate back to the list.
func (d *OrderDetail) Delete(ctx context.Context) (bool, error) {
	if !d.loaded {
		return false, fmt.Errorf("console: no order loaded")
	}
	if !d.confirm.Confirm("Are you sure you want to delete this order?") {
		return false, nil
	}
	if err := d.orders.Delete(ctx, d.order.ID); err != nil {
		return false, err
	}
	d.order = api.Order{}
	d.loaded = false
	return true, nil
}
