package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"apexmotors/internal/flash"
	applog "apexmotors/internal/log"
)

func isAsset(c *fiber.Ctx) bool {
	p := c.Path()
	return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/images/")
}

// LoadNav puts the classification list in Locals for the navigation bar.
// Fetched per request so a freshly added classification shows immediately.
func LoadNav(deps *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAsset(c) {
			return c.Next()
		}
		nav, err := deps.Catalog.Nav()
		if err != nil {
			applog.Error(c, "nav.load.fail", err, nil)
			return c.Next()
		}
		c.Locals("nav", nav)
		return c.Next()
	}
}

// PopNotices moves queued one-shot notices into Locals for the next render.
func PopNotices(fl *flash.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAsset(c) {
			return c.Next()
		}
		if msgs := fl.Pop(c); len(msgs) > 0 {
			c.Locals("notices", msgs)
		}
		return c.Next()
	}
}
