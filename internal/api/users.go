package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopora/admin_console/internal/listquery"
)

// UsersService groups the user endpoints.
type UsersService struct {
	client *Client
}

// Search returns one page of users for q. The users endpoint only understands
// search and pagination; the filter dimensions are not sent.
func (s *UsersService) Search(ctx context.Context, q listquery.Query) (UserPage, error) {
	var page UserPage
	if err := s.client.get(ctx, "/api/users/search", q.Values(), &page, true); err != nil {
		return UserPage{}, err
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	return page, nil
}

// Get fetches a single user.
func (s *UsersService) Get(ctx context.Context, userID string) (User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, fmt.Errorf("api: user id is required")
	}

	var user User
	if err := s.client.get(ctx, "/api/users/"+url.PathEscape(userID), nil, &user, true); err != nil {
		return User{}, err
	}
	if user.ID == "" {
		return User{}, &DecodeError{Endpoint: "/api/users/" + userID, Err: fmt.Errorf("response has no _id")}
	}
	return user, nil
}

// Delete removes the user account.
func (s *UsersService) Delete(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("api: user id is required")
	}
	return s.client.delete(ctx, "/api/users/"+url.PathEscape(userID), true)
}
