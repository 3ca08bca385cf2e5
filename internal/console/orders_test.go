package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shopora/admin_console/internal/api"
	"github.com/shopora/admin_console/internal/credential"
)

func newBackend(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(credential.Credential{Token: "tok"}))

	client, err := api.New(api.Config{BaseURL: srv.URL, Credentials: store, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return client
}

func alwaysConfirm() Confirmer {
	return ConfirmerFunc(func(string) bool { return true })
}

func neverConfirm() Confirmer {
	return ConfirmerFunc(func(string) bool { return false })
}

func ordersSearchPayload(orders ...api.Order) []byte {
	payload, _ := json.Marshal(api.OrderPage{Orders: orders, TotalOrders: len(orders), TotalPages: 1})
	return payload
}

func TestOrdersListRendersSinglePage(t *testing.T) {
	o1 := api.Order{ID: "ord-1", Name: "Alice", Status: api.StatusPending, TotalPrice: 10}
	o2 := api.Order{ID: "ord-2", Name: "Bob", Status: api.StatusCompleted, TotalPrice: 20}
	var searches atomic.Int64
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searches.Add(1)
		w.Write(ordersSearchPayload(o1, o2))
	}))

	list := NewOrdersList(client.Orders(), alwaysConfirm(), zerolog.Nop())
	require.NoError(t, list.Refresh(context.Background()))

	require.Equal(t, []api.Order{o1, o2}, list.Items())
	require.Equal(t, 2, list.TotalCount())
	require.Equal(t, 1, list.TotalPages())

	// With a single page both pagination directions are disabled: no calls.
	before := searches.Load()
	require.NoError(t, list.GoToPage(context.Background(), 2))
	require.NoError(t, list.GoToPage(context.Background(), 0))
	require.Equal(t, before, searches.Load())
}

func TestToggleOrderStatusPatchesOnlyTargetRow(t *testing.T) {
	o1 := api.Order{ID: "ord-1", Name: "Alice", Status: api.StatusPending, TotalPrice: 10, Payment: "card"}
	o2 := api.Order{ID: "ord-2", Name: "Bob", Status: api.StatusCompleted, TotalPrice: 20, Payment: "cod"}
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut:
			require.Equal(t, "/api/orders/ord-1/status", r.URL.Path)
			json.NewEncoder(w).Encode(api.Order{ID: "ord-1", Status: api.StatusCompleted})
		default:
			w.Write(ordersSearchPayload(o1, o2))
		}
	}))

	list := NewOrdersList(client.Orders(), alwaysConfirm(), zerolog.Nop())
	require.NoError(t, list.Refresh(context.Background()))

	next, err := list.ToggleOrderStatus(context.Background(), "ord-1")
	require.NoError(t, err)
	require.Equal(t, api.StatusCompleted, next)

	items := list.Items()
	require.Equal(t, api.StatusCompleted, items[0].Status)
	want := o1
	want.Status = api.StatusCompleted
	require.Equal(t, want, items[0], "only the status field may change")
	require.Equal(t, o2, items[1], "untargeted rows must be untouched")
}

func TestToggleOrderStatusTrimsPastedID(t *testing.T) {
	o1 := api.Order{ID: "64f0c2", Name: "Alice", Status: api.StatusPending}
	var putPath string
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			putPath = r.URL.Path
			json.NewEncoder(w).Encode(api.Order{ID: "64f0c2", Status: api.StatusCompleted})
			return
		}
		w.Write(ordersSearchPayload(o1))
	}))

	list := NewOrdersList(client.Orders(), alwaysConfirm(), zerolog.Nop())
	require.NoError(t, list.Refresh(context.Background()))

	_, err := list.ToggleOrderStatus(context.Background(), "  64f0c2 ")
	require.NoError(t, err)
	require.Equal(t, "/api/orders/64f0c2/status", putPath)
	require.Equal(t, api.StatusCompleted, list.Items()[0].Status)
}

func TestToggleOrderStatusFailureLeavesStatusUnchanged(t *testing.T) {
	o1 := api.Order{ID: "ord-1", Name: "Alice", Status: api.StatusPending}
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"update failed"}`))
			return
		}
		w.Write(ordersSearchPayload(o1))
	}))

	list := NewOrdersList(client.Orders(), alwaysConfirm(), zerolog.Nop())
	require.NoError(t, list.Refresh(context.Background()))

	_, err := list.ToggleOrderStatus(context.Background(), "ord-1")
	require.Error(t, err)
	require.Equal(t, api.StatusPending, list.Items()[0].Status, "failed update must not touch local state")
}

func TestToggleOrderStatusUnknownIDFailsLoudly(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(ordersSearchPayload())
	}))

	list := NewOrdersList(client.Orders(), alwaysConfirm(), zerolog.Nop())
	require.NoError(t, list.Refresh(context.Background()))

	_, err := list.ToggleOrderStatus(context.Background(), "ghost")
	require.Error(t, err, "an id that is not present must be reported, not ignored")
}

func TestDeleteOrderDeclinedDoesNothing(t *testing.T) {
	o1 := api.Order{ID: "ord-1", Name: "Alice", Status: api.StatusPending}
	var deletes atomic.Int64
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
			return
		}
		w.Write(ordersSearchPayload(o1))
	}))

	list := NewOrdersList(client.Orders(), neverConfirm(), zerolog.Nop())
	require.NoError(t, list.Refresh(context.Background()))

	deleted, err := list.DeleteOrder(context.Background(), "ord-1")
	require.NoError(t, err)
	require.False(t, deleted)
	require.Zero(t, deletes.Load(), "declined confirmation must send no request")
	require.Len(t, list.Items(), 1)
}

func TestDeleteOrderRemovesExactlyOne(t *testing.T) {
	o1 := api.Order{ID: "ord-1", Name: "Alice", Status: api.StatusPending}
	o2 := api.Order{ID: "ord-2", Name: "Bob", Status: api.StatusCompleted}
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			require.Equal(t, "/api/orders/ord-1", r.URL.Path)
			return
		}
		w.Write(ordersSearchPayload(o1, o2))
	}))

	list := NewOrdersList(client.Orders(), alwaysConfirm(), zerolog.Nop())
	require.NoError(t, list.Refresh(context.Background()))

	deleted, err := list.DeleteOrder(context.Background(), "ord-1")
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, []api.Order{o2}, list.Items())
}

func TestDeleteOrderFailureKeepsRow(t *testing.T) {
	o1 := api.Order{ID: "ord-1", Name: "Alice", Status: api.StatusPending}
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Order not found"}`))
			return
		}
		w.Write(ordersSearchPayload(o1))
	}))

	list := NewOrdersList(client.Orders(), alwaysConfirm(), zerolog.Nop())
	require.NoError(t, list.Refresh(context.Background()))

	deleted, err := list.DeleteOrder(context.Background(), "ord-1")
	require.Error(t, err)
	require.True(t, api.IsNotFound(err))
	require.False(t, deleted)
	require.Len(t, list.Items(), 1, "failed delete must not remove the row")
}

func TestOrderDetailUpdateStatusPrefersServerCopy(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			json.NewEncoder(w).Encode(api.Order{ID: "ord-1", Name: "Alice", Status: api.StatusShipped, TotalPrice: 42})
		default:
			w.Write([]byte(`{"_id":"ord-1","name":"Alice","status":"Pending","totalPrice":42,"items":"[]"}`))
		}
	}))

	detail := NewOrderDetail(client.Orders(), alwaysConfirm())
	require.NoError(t, detail.Load(context.Background(), "ord-1"))

	require.NoError(t, detail.UpdateStatus(context.Background(), api.StatusShipped))

	order, ok := detail.Order()
	require.True(t, ok)
	require.Equal(t, api.StatusShipped, order.Status)
	require.Equal(t, 42.0, order.TotalPrice)
}

func TestOrderDetailDeleteNavigatesBack(t *testing.T) {
	client := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			return
		}
		w.Write([]byte(`{"_id":"ord-1","name":"Alice","status":"Pending","totalPrice":1}`))
	}))

	detail := NewOrderDetail(client.Orders(), alwaysConfirm())
	require.NoError(t, detail.Load(context.Background(), "ord-1"))

	back, err := detail.Delete(context.Background())
	require.NoError(t, err)
	require.True(t, back, "a deleted detail view navigates back to the list")

	_, ok := detail.Order()
	require.False(t, ok)
}
