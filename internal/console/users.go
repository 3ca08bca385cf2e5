package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopora/admin_console/internal/api"
	"github.com/shopora/admin_console/internal/listquery"
)

// usersPageSize matches the users search endpoint's page size.
const usersPageSize = 5

// UsersList drives the users list view: search, pagination and deletion.
// The users endpoint has no filter dimensions; the session's toggle calls
// still work but only move the page back to 1.
type UsersList struct {
	*ListSession[api.User]
	users   *api.UsersService
	confirm Confirmer
}

// NewUsersList returns a users list session.
func NewUsersList(users *api.UsersService, confirm Confirmer, log zerolog.Logger) *UsersList {
	l := &UsersList{users: users, confirm: confirm}
	l.ListSession = newListSession(listquery.New(usersPageSize),
		func(ctx context.Context, q listquery.Query) ([]api.User, int, int, error) {
			page, err := users.Search(ctx, q)
			if err != nil {
				return nil, 0, 0, err
			}
			// The endpoint reports pages but not a total count.
			return page.Users, -1, page.TotalPages, nil
		}, log)
	return l
}

// DeleteUser removes the user after an explicit confirmation. The row leaves
// the list only when the backend confirms the deletion; a failed request
// keeps it in place.
func (l *UsersList) DeleteUser(ctx context.Context, userID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, fmt.Errorf("console: user id is required")
	}
	if !l.confirm.Confirm("Are you sure you want to delete this user?") {
		return false, nil
	}
	if err := l.users.Delete(ctx, userID); err != nil {
		return false, err
	}
	l.remove(func(u api.User) bool { return u.ID == userID })
	return true, nil
}

// UserDetail drives the single-user view: the account, its order history and
// lifetime total paid, and account deletion.
type UserDetail struct {
	users  *api.UsersService
	orders *api.OrdersService

	confirm Confirmer

	user      api.User
	history   []api.Order
	totalPaid float64
	loaded    bool
}

// NewUserDetail returns an empty detail session; call Load first.
func NewUserDetail(users *api.UsersService, orders *api.OrdersService, confirm Confirmer) *UserDetail {
	return &UserDetail{users: users, orders: orders, confirm: confirm}
}

// Load fetches the user and their order history. Either fetch failing fails
// the load as a whole; a half-loaded view is worse than an error.
func (d *UserDetail) Load(ctx context.Context, userID string) error {
	user, err := d.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	history, err := d.orders.ListByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	d.user = user
	d.history = history.Orders
	d.totalPaid = history.TotalPaid
	d.loaded = true
	return nil
}

// User returns the held user and whether one is loaded.
func (d *UserDetail) User() (api.User, bool) {
	return d.user, d.loaded
}

// Orders returns the user's order history.
func (d *UserDetail) Orders() []api.Order {
	return d.history
}

// TotalPaid returns the user's lifetime total paid.
func (d *UserDetail) TotalPaid() float64 {
	return d.totalPaid
}

// Delete removes the user after confirmation. A true result tells the caller
// to navigate back to the users list.
func (d *UserDetail) Delete(ctx context.Context) (bool, error) {
	if !d.loaded {
		return false, fmt.Errorf("console: no user loaded")
	}
	if !d.confirm.Confirm("Are you sure you want to delete this user?") {
		return false, nil
	}
	if err := d.users.Delete(ctx, d.user.ID); err != nil {
		return false, err
	}
	d.user = api.User{}
	d.history = nil
	d.totalPaid = 0
	d.loaded = false
	return true, nil
}
