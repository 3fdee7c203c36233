package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ports"
)

// captureRenderer records the last page rendered instead of executing
// templates.
type captureRenderer struct {
	name string
	page Page
}

func (r *captureRenderer) Render(_ io.Writer, name string, data any, _ echo.Context) error {
	r.name = name
	r.page = data.(Page)
	return nil
}

func newTestEcho() (*echo.Echo, *captureRenderer) {
	e := echo.New()
	r := &captureRenderer{}
	e.Renderer = r
	e.Validator = NewValidator()
	return e, r
}

func formRequest(method, target string, form string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// withFlashes runs h behind the cookie session middleware that backs flash
// messages.
func withFlashes(h echo.HandlerFunc) echo.HandlerFunc {
	return session.Middleware(sessions.NewCookieStore([]byte("test-secret")))(h)
}

func expectFlashRedirect(t *testing.T, rec *httptest.ResponseRecorder, to string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != to {
		t.Fatalf("expected redirect to %q, got %q", to, loc)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderSetCookie), FlashSession+"=") {
		t.Fatalf("expected flash cookie, got %q", rec.Header().Get(echo.HeaderSetCookie))
	}
}

type stubAuthService struct {
	authenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
	createUserFn   func(ctx context.Context, username, password string) (*domain.User, error)
	listUsersFn    func(ctx context.Context) ([]domain.User, error)
}

func (s *stubAuthService) Bootstrap(context.Context) error { return nil }

func (s *stubAuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, username, password)
}

func (s *stubAuthService) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	return s.createUserFn(ctx, username, password)
}

func (s *stubAuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.listUsersFn(ctx)
}

func (s *stubAuthService) MigrateLegacyPasswords(context.Context) (int, error) { return 0, nil }

type stubRecordService struct {
	createFn      func(ctx context.Context, input ports.RecordInput) (*domain.ServiceRecord, error)
	listFn        func(ctx context.Context) ([]domain.ServiceRecord, error)
	suggestionsFn func(ctx context.Context, field string) ([]string, error)
	deleteAllFn   func(ctx context.Context) (int64, error)
}

func (s *stubRecordService) Create(ctx context.Context, input ports.RecordInput) (*domain.ServiceRecord, error) {
	return s.createFn(ctx, input)
}

func (s *stubRecordService) List(ctx context.Context) ([]domain.ServiceRecord, error) {
	return s.listFn(ctx)
}

func (s *stubRecordService) Suggestions(ctx context.Context, field string) ([]string, error) {
	return s.suggestionsFn(ctx, field)
}

func (s *stubRecordService) DeleteAll(ctx context.Context) (int64, error) {
	return s.deleteAllFn(ctx)
}

type stubImportService struct {
	importFn func(ctx context.Context, filename string, data []byte) (*ports.ImportResult, error)
}

func (s *stubImportService) Import(ctx context.Context, filename string, data []byte) (*ports.ImportResult, error) {
	return s.importFn(ctx, filename, data)
}
