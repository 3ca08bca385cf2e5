package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is an order's lifecycle state.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusShipped   Status = "Shipped"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists every status an operator may assign.
func Statuses() []Status {
	return []Status{StatusPending, StatusCompleted, StatusShipped, StatusCancelled}
}

// Valid reports whether s is part of the fixed enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusShipped, StatusCancelled:
		return true
	}
	return false
}

// Next returns the other half of the two-state list toggle: Pending orders
// complete, anything else goes back to Pending.
func (s Status) Next() Status {
	if s == StatusPending {
		return StatusCompleted
	}
	return StatusPending
}

// LineItem is one purchased product inside an order.
type LineItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
}

// LineItems decodes both the plain array form and the backend's historical
// encoding of the items column as a JSON string containing JSON. Decoding
// happens once here, at ingestion; nothing downstream ever re-parses.
type LineItems []LineItem

func (li *LineItems) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		*li = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("items string: %w", err)
		}
		if strings.TrimSpace(raw) == "" {
			*li = nil
			return nil
		}
		if err := json.Unmarshal([]byte(raw), (*[]LineItem)(li)); err != nil {
			return fmt.Errorf("items nested payload: %w", err)
		}
		return nil
	}
	return json.Unmarshal(data, (*[]LineItem)(li))
}

// Order is a customer order as the backend serves it.
type Order struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	StreetAddress string    `json:"streetAddress,omitempty"`
	PhoneNumber   string    `json:"phoneNumber,omitempty"`
	Status        Status    `json:"status"`
	TotalPrice    float64   `json:"totalPrice"`
	Payment       string    `json:"payment,omitempty"`
	Items         LineItems `json:"items,omitempty"`
}

// User is a storefront account as the backend serves it.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// OrderPage is one page of order search results.
type OrderPage struct {
	Orders      []Order `json:"orders"`
	TotalOrders int     `json:"totalOrders"`
	TotalPages  int     `json:"totalPages"`
}

// UserPage is one page of user search results. The users endpoint does not
// report a total count, only the page count.
type UserPage struct {
	Users      []User `json:"users"`
	TotalPages int    `json:"totalPages"`
}

// StoreStats is the dashboard aggregate.
type StoreStats struct {
	OrderCount   int     `json:"count"`
	Revenue      float64 `json:"revenue"`
	NewCustomers int     `json:"users"`
}

// UserOrders is a user's order history with the amount they have paid.
type UserOrders struct {
	Orders    []Order `json:"orders"`
	TotalPaid float64 `json:"totalPaid"`
}

// Session is what a successful login returns.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
