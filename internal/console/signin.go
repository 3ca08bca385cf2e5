package console

import (
	"context"
	"fmt"

	"github.com/shopora/admin_console/internal/api"
	"github.com/shopora/admin_console/internal/credential"
)

// SignIn logs in against the backend and persists the returned credential.
// Every later authenticated call reads the same store, so login and the admin
// views can never disagree about where the token lives.
func SignIn(ctx context.Context, auth *api.AuthService, store credential.Store, email, password string) (api.Session, error) {
	session, err := auth.Login(ctx, email, password)
	if err != nil {
		return api.Session{}, err
	}
	if err := store.Save(credential.Credential{Token: session.Token, Role: session.Role}); err != nil {
		return api.Session{}, fmt.Errorf("console: persist credential: %w", err)
	}
	return session, nil
}

// SignOut discards the stored credential. The backend session is left to
// expire on its own; the token is opaque and there is no revocation endpoint.
func SignOut(store credential.Store) error {
	return store.Clear()
}
