package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sutram/service-registry/internal/core/domain"
)

// Page is the data every template receives.
type Page struct {
	Title            string
	User             string
	Flashes          []Flash
	Users            []domain.User
	SuggestionFields []string
}

// render shows a page with queued flashes followed by now, which are
// messages for this response only.
func render(c echo.Context, status int, name string, p Page, now ...Flash) error {
	p.User = currentUsername(c)
	p.Flashes = append(popFlashes(c), now...)
	return c.Render(status, name, p)
}

// redirectWithFlash queues a message and redirects.
func redirectWithFlash(c echo.Context, to, category, message string) error {
	if err := addFlash(c, category, message); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, to)
}
