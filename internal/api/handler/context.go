package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sutram/service-registry/internal/api/middleware"
)

// currentUsername returns the logged-in username for page chrome, or "" on
// public pages.
func currentUsername(c echo.Context) string {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return ""
	}
	return id.Username
}
