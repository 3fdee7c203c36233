package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sutram/service-registry/internal/api/metrics"
	"github.com/sutram/service-registry/internal/api/middleware"
	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ports"
)

const (
	msgMissingCredentials = "Informe usuário e senha."
	msgInvalidCredentials = "Usuário ou senha inválidos."
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    *middleware.Sessions
}

func NewAuthHandler(authService ports.AuthService, sessions *middleware.Sessions) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type loginRequest struct {
	Username string `form:"usuario" validate:"required"`
	Password string `form:"senha"   validate:"required"`
	Remember string `form:"lembrar"`
}

// Index sends signed-in users to the record form and everyone else to login.
func (h *AuthHandler) Index(c echo.Context) error {
	if _, ok := h.sessions.Read(c); ok {
		return c.Redirect(http.StatusFound, "/cadastro")
	}
	return c.Redirect(http.StatusFound, middleware.LoginPath)
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	return render(c, http.StatusOK, "login.html", Page{Title: "Entrar"})
}

// Login verifies the form and starts a session. Unknown users and wrong
// passwords get the same 401 page.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	req.Username = strings.TrimSpace(req.Username)

	page := Page{Title: "Entrar"}
	if err := c.Validate(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("incomplete").Inc()
		return render(c, http.StatusOK, "login.html", page, Flash{FlashWarning, msgMissingCredentials})
	}

	user, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		metrics.LoginAttemptsTotal.WithLabelValues("incomplete").Inc()
		return render(c, http.StatusOK, "login.html", page, Flash{FlashWarning, msgMissingCredentials})
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		return render(c, http.StatusUnauthorized, "login.html", page, Flash{FlashDanger, msgInvalidCredentials})
	case err != nil:
		return err
	}

	if err := h.sessions.Issue(c, user, req.Remember != ""); err != nil {
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()
	return c.Redirect(http.StatusFound, "/cadastro")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	return c.Redirect(http.StatusFound, middleware.LoginPath)
}
