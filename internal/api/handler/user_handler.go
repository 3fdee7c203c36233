package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sutram/service-registry/internal/api/metrics"
	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ports"
)

const (
	usersPath          = "/usuarios"
	msgPasswordTooLong = "Senha muito longa (máximo 72 bytes)."
)

type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type createUserRequest struct {
	Username string `form:"usuario" validate:"required"`
	Password string `form:"senha"   validate:"required,max=72"`
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "usuarios.html", Page{Title: "Usuários", Users: users})
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := c.Validate(&req); err != nil {
		if len(req.Password) > domain.MaxPasswordBytes {
			return redirectWithFlash(c, usersPath, FlashWarning, msgPasswordTooLong)
		}
		return redirectWithFlash(c, usersPath, FlashWarning, msgMissingCredentials)
	}

	_, err := h.authService.CreateUser(c.Request().Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return redirectWithFlash(c, usersPath, FlashDanger, "Usuário já existe.")
	case errors.Is(err, domain.ErrMissingCredentials):
		return redirectWithFlash(c, usersPath, FlashWarning, msgMissingCredentials)
	case errors.Is(err, domain.ErrPasswordTooLong):
		// max=72 counts runes, so multibyte passwords can still get here.
		return redirectWithFlash(c, usersPath, FlashWarning, msgPasswordTooLong)
	case err != nil:
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return redirectWithFlash(c, usersPath, FlashSuccess, "Usuário criado.")
}
