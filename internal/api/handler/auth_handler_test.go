package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sutram/service-registry/internal/api/middleware"
	"github.com/sutram/service-registry/internal/core/domain"
)

func newTestSessions() *middleware.Sessions {
	return middleware.NewSessions(middleware.SessionConfig{
		Secret:     "test-secret",
		TTL:        time.Hour,
		RememberMe: 7 * 24 * time.Hour,
	})
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e, _ := newTestEcho()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %q %q", username, password)
			}
			return &domain.User{ID: 3, Username: username}, nil
		},
	}
	handler := NewAuthHandler(stub, newTestSessions())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", "usuario=+alice+&senha=secret"), rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/cadastro" {
		t.Fatalf("expected redirect to /cadastro, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	var found bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected session cookie")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e, r := newTestEcho()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, fmt.Errorf("authenticate: %w", domain.ErrInvalidCredentials)
		},
	}
	handler := NewAuthHandler(stub, newTestSessions())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", "usuario=alice&senha=wrong"), rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if r.name != "login.html" {
		t.Fatalf("expected login page, got %q", r.name)
	}
	want := Flash{FlashDanger, msgInvalidCredentials}
	if len(r.page.Flashes) != 1 || r.page.Flashes[0] != want {
		t.Fatalf("unexpected flashes %+v", r.page.Flashes)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("failed login must not set cookies")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e, r := newTestEcho()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string, string) (*domain.User, error) {
			t.Fatalf("Authenticate must not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, newTestSessions())

	for _, form := range []string{"usuario=alice", "senha=x", "usuario=+++&senha=x"} {
		rec := httptest.NewRecorder()
		c := e.NewContext(formRequest(http.MethodPost, "/login", form), rec)

		if err := handler.Login(c); err != nil {
			t.Fatalf("%s: handler error: %v", form, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", form, rec.Code)
		}
		want := Flash{FlashWarning, msgMissingCredentials}
		if len(r.page.Flashes) != 1 || r.page.Flashes[0] != want {
			t.Fatalf("%s: unexpected flashes %+v", form, r.page.Flashes)
		}
	}
}

func TestAuthHandler_Index(t *testing.T) {
	e, _ := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, newTestSessions())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := handler.Index(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get("Location") != middleware.LoginPath {
		t.Fatalf("anonymous index should go to login, got %q", rec.Header().Get("Location"))
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e, _ := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, newTestSessions())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookie || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected the session cookie to be expired, got %+v", cookies)
	}
}
