package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopora/admin_console/internal/credential"
	"github.com/shopora/admin_console/internal/listquery"
)

func TestLoginReturnsSessionWithoutNeedingCredential(t *testing.T) {
	var sawAuthHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" || r.Method != http.MethodPost {
			t.Errorf("got %s %s, want POST /api/login", r.Method, r.URL.Path)
		}
		sawAuthHeader = r.Header.Get("Authorization") != ""
		var body struct{ Email, Password string }
		json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "admin@example.com" || body.Password != "hunter2" {
			t.Errorf("body = %+v, want submitted credentials", body)
		}
		w.Write([]byte(`{"token":"tok-new","role":"admin"}`))
	}))
	defer srv.Close()

	// An empty store: login must work before any credential exists.
	c := newTestClient(t, srv.URL, credential.NewMemoryStore())
	session, err := c.Auth().Login(context.Background(), "admin@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if session.Token != "tok-new" || session.Role != "admin" {
		t.Errorf("session = %+v, want token and role from backend", session)
	}
	if sawAuthHeader {
		t.Error("login request carried an Authorization header")
	}
}

func TestLoginRejectsTokenlessResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"role":"admin"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, credential.NewMemoryStore())
	if _, err := c.Auth().Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Error("Login() with no token in response = nil error, want decode failure")
	}
}

func TestSignupAndVerifyCode(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		switch r.URL.Path {
		case "/api/signup":
			if body["role"] != "admin" {
				t.Errorf("signup role = %q, want admin", body["role"])
			}
		case "/api/verifyCode":
			if body["code"] != "123456" {
				t.Errorf("verify code = %q, want 123456", body["code"])
			}
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, credential.NewMemoryStore())
	ctx := context.Background()
	if err := c.Auth().Signup(ctx, "Alice", "alice@example.com", "pw", "admin"); err != nil {
		t.Fatalf("Signup() error: %v", err)
	}
	if err := c.Auth().VerifyCode(ctx, "alice@example.com", " 123456 "); err != nil {
		t.Fatalf("VerifyCode() error: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/api/signup" || paths[1] != "/api/verifyCode" {
		t.Errorf("paths = %v, want signup then verifyCode", paths)
	}
}

func TestUsersSearchOmitsFilterDimensions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if _, ok := q["dateFilter"]; ok {
			t.Error("users search sent dateFilter; endpoint does not take it")
		}
		if q.Get("limit") != "5" {
			t.Errorf("limit = %q, want 5", q.Get("limit"))
		}
		w.Write([]byte(`{"users":[{"_id":"u-1","name":"Alice","email":"a@b.c"}],"totalPages":4}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, storeWithToken(t, "tok"))
	page, err := c.Users().Search(context.Background(), listquery.New(5))
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(page.Users) != 1 || page.TotalPages != 4 {
		t.Errorf("page = %+v, want one user over 4 pages", page)
	}
}
