package handlers

import "github.com/gofiber/fiber/v2"

// render fills in the data every page expects: the signed-in account, the
// navigation classifications, queued notices and the CSRF token.
func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if a := c.Locals("account"); a != nil {
		data["Account"] = a
	}
	if nav := c.Locals("nav"); nav != nil {
		if _, ok := data["Nav"]; !ok {
			data["Nav"] = nav
		}
	}
	if notices := c.Locals("notices"); notices != nil {
		if _, ok := data["Notices"]; !ok {
			data["Notices"] = notices
		}
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	} else if cookTok := c.Cookies("csrf_"); cookTok != "" {
		data["CSRFToken"] = cookTok
	}
	return c.Render(tmpl, data)
}
