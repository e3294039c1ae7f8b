package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"apexmotors/internal/domain"
	"apexmotors/internal/flash"
	applog "apexmotors/internal/log"
	"apexmotors/internal/services"
)

const jwtCookie = "jwt"

// CheckToken decodes the identity cookie on every request. A bad signature
// clears the cookie and the request continues anonymous; guards downstream
// decide whether identity is required.
func CheckToken(auth *services.AuthService, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(jwtCookie)
		if raw == "" {
			return c.Next()
		}
		acct, err := auth.ParseToken(raw)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			clearTokenCookie(c, secure)
			return c.Next()
		}
		c.Locals("account", acct)
		return c.Next()
	}
}

// RequireLogin redirects anonymous requests to the login page with a notice.
func RequireLogin(fl *flash.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("account").(*domain.Account); !ok {
			fl.Add(c, "Please log in.")
			return c.Redirect("/account/login")
		}
		return c.Next()
	}
}

// RequireStaff gates the inventory administration to Employee/Admin accounts.
func RequireStaff(fl *flash.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acct, _ := c.Locals("account").(*domain.Account)
		if !acct.IsStaff() {
			applog.Security(c, "access.denied.staff", nil)
			fl.Add(c, "Please log in with an employee or admin account.")
			return c.Redirect("/account/login")
		}
		return c.Next()
	}
}

func setTokenCookie(c *fiber.Ctx, token string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     jwtCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   secure,
		Expires:  time.Now().Add(time.Hour),
	})
}

func clearTokenCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     jwtCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   secure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func currentAccount(c *fiber.Ctx) *domain.Account {
	acct, _ := c.Locals("account").(*domain.Account)
	return acct
}
