package api

import (
	"context"
	"fmt"
	"strings"
)

// AuthService groups the session endpoints. None of them require an existing
// credential.
type AuthService struct {
	client *Client
}

// Login exchanges an email and password for a bearer session.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("api: email and password are required")
	}

	body := map[string]string{"email": email, "password": password}
	var session Session
	if err := s.client.post(ctx, "/api/login", body, &session, false); err != nil {
		return Session{}, err
	}
	if session.Token == "" {
		return Session{}, &DecodeError{Endpoint: "/api/login", Err: fmt.Errorf("response has no token")}
	}
	return session, nil
}

// Signup registers an account. The backend follows up with a verification
// code that must be confirmed through VerifyCode before login works.
func (s *AuthService) Signup(ctx context.Context, name, email, password, role string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return fmt.Errorf("api: name, email and password are required")
	}
	if role == "" {
		role = "user"
	}

	body := map[string]string{"name": name, "email": email, "password": password, "role": role}
	return s.client.post(ctx, "/api/signup", body, nil, false)
}

// VerifyCode confirms the emailed verification code for a fresh signup.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return fmt.Errorf("api: email and code are required")
	}

	body := map[string]string{"email": email, "code": code}
	return s.client.post(ctx, "/api/verifyCode", body, nil, false)
}
