package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"apexmotors/internal/config"
	"apexmotors/internal/http/handlers"
	applog "apexmotors/internal/log"
	"apexmotors/internal/repos"
	"apexmotors/internal/view"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	deps := handlers.NewDeps(db, cfg)

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.AddFunc("usd", view.USD)
	engine.AddFunc("num", view.Num)
	engine.AddFunc("stars", view.Stars)
	engine.AddFunc("round1", view.Round1)
	if cfg.IsDev() {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Oh no! There was a crash. Maybe try a different route?"
			if fe, ok := err.(*fiber.Error); ok && fe.Code == fiber.StatusNotFound {
				code = fiber.StatusNotFound
				message = "Sorry, we appear to have lost that page."
			} else {
				applog.Error(c, "server.error", err, map[string]any{"url": c.OriginalURL()})
			}
			if rerr := c.Status(code).Render("error", fiber.Map{
				"Title":   code,
				"Message": message,
			}); rerr != nil {
				return c.Status(code).SendString(message)
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Decode the identity cookie for templates and guards
	app.Use(handlers.CheckToken(deps.Auth, !cfg.IsDev()))
	app.Use(handlers.LoadNav(deps))
	app.Use(handlers.PopNotices(deps.Flash))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/images/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   !cfg.IsDev(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("error", fiber.Map{
				"Title":   fiber.StatusForbidden,
				"Message": "Security check failed. Please refresh and try again.",
			})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	imagesDir := cfg.ImagesDir
	if !filepath.IsAbs(imagesDir) {
		if abs, err := filepath.Abs(imagesDir); err == nil {
			imagesDir = abs
		}
	}
	log.Printf("[static] /static -> ./web/static")
	log.Printf("[static] /images -> %s", imagesDir)

	app.Static("/static", "./web/static")
	// Guarded vehicle photos to avoid traversal
	app.Get("/images/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "images.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "images.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(imagesDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- Routes ----------
	app.Get("/", deps.InventoryHandler.Home)

	// Accounts
	acct := app.Group("/account")
	acct.Get("/login", deps.AccountHandler.LoginForm)
	acct.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("account/login", fiber.Map{
				"Title":   "Login",
				"Notices": []string{"Too many attempts. Please try again later."},
			})
		},
	}), deps.AccountHandler.Login)
	acct.Get("/register", deps.AccountHandler.RegisterForm)
	acct.Post("/register", deps.AccountHandler.Register)
	acct.Get("/logout", deps.AccountHandler.Logout)
	acct.Get("/", handlers.RequireLogin(deps.Flash), deps.AccountHandler.Home)
	acct.Get("/update/:account_id", handlers.RequireLogin(deps.Flash), deps.AccountHandler.UpdateForm)
	acct.Post("/update", handlers.RequireLogin(deps.Flash), deps.AccountHandler.Update)
	acct.Post("/change-password", handlers.RequireLogin(deps.Flash), deps.AccountHandler.ChangePassword)

	// Inventory browsing
	inv := app.Group("/inv")
	inv.Get("/type/:classificationId", deps.InventoryHandler.ByClassification)
	inv.Get("/detail/:inventoryId", deps.InventoryHandler.Detail)
	inv.Get("/getInventory/:classification_id", deps.InventoryHandler.InventoryJSON)

	// Inventory administration (Employee/Admin only)
	requireStaff := handlers.RequireStaff(deps.Flash)
	inv.Get("/", requireStaff, deps.InventoryHandler.Management)
	inv.Get("/add-classification", requireStaff, deps.InventoryHandler.AddClassificationForm)
	inv.Post("/add-classification", requireStaff, deps.InventoryHandler.AddClassification)
	inv.Get("/add-inventory", requireStaff, deps.InventoryHandler.AddVehicleForm)
	inv.Post("/add-inventory", requireStaff, deps.InventoryHandler.AddVehicle)
	inv.Get("/edit/:inventoryId", requireStaff, deps.InventoryHandler.EditVehicleForm)
	inv.Post("/update", requireStaff, deps.InventoryHandler.UpdateVehicle)
	inv.Get("/delete/:inv_id", requireStaff, deps.InventoryHandler.DeleteVehicleForm)
	inv.Post("/delete", requireStaff, deps.InventoryHandler.DeleteVehicle)

	// Reviews (logged-in only)
	rev := app.Group("/review", handlers.RequireLogin(deps.Flash))
	rev.Post("/add", deps.ReviewHandler.Add)
	rev.Get("/user", deps.ReviewHandler.Mine)
	rev.Get("/edit/:reviewId", deps.ReviewHandler.EditForm)
	rev.Post("/update", deps.ReviewHandler.Update)
	rev.Get("/delete/:reviewId", deps.ReviewHandler.DeleteForm)
	rev.Post("/delete", deps.ReviewHandler.Delete)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	addr := cfg.Host + ":" + cfg.Port
	log.Printf("app listening on %s", addr)
	log.Fatal(app.Listen(addr))
}
