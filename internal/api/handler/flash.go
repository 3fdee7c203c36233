package handler

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// FlashSession is the gorilla session holding one-shot messages.
const FlashSession = "sutram_flash"

// Flash categories, in display order.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

var flashCategories = []string{FlashSuccess, FlashInfo, FlashWarning, FlashDanger}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// addFlash queues a message for the next page render, typically after a
// redirect.
func addFlash(c echo.Context, category, message string) error {
	sess, err := session.Get(FlashSession, c)
	if err != nil {
		// A cookie signed with an old secret decodes to a fresh session;
		// anything else is a real failure.
		if sess == nil {
			return err
		}
	}
	sess.AddFlash(message, category)
	return sess.Save(c.Request(), c.Response())
}

// popFlashes drains queued messages. Failures only lose messages.
func popFlashes(c echo.Context) []Flash {
	sess, err := session.Get(FlashSession, c)
	if err != nil || sess == nil {
		return nil
	}

	var out []Flash
	for _, cat := range flashCategories {
		for _, m := range sess.Flashes(cat) {
			if s, ok := m.(string); ok {
				out = append(out, Flash{Category: cat, Message: s})
			}
		}
	}
	if len(out) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return out
}
