package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"apexmotors/internal/config"
	"apexmotors/internal/http/handlers"
	"apexmotors/internal/repos"
	"apexmotors/internal/view"
)

// newTestApp wires the real handlers against an in-memory database with the
// same middleware chain the server uses, minus the rate limiter.
func newTestApp(t *testing.T) (*fiber.App, *handlers.Deps, *sqlx.DB) {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{TokenSecret: "test-secret", Env: "development"}
	deps := handlers.NewDeps(db, cfg)

	engine := html.New("../../web/templates", ".html")
	engine.AddFunc("usd", view.USD)
	engine.AddFunc("num", view.Num)
	engine.AddFunc("stars", view.Stars)
	engine.AddFunc("round1", view.Round1)

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Oh no! There was a crash. Maybe try a different route?"
			if fe, ok := err.(*fiber.Error); ok && fe.Code == fiber.StatusNotFound {
				code = fiber.StatusNotFound
				message = "Sorry, we appear to have lost that page."
			}
			return c.Status(code).Render("error", fiber.Map{"Title": code, "Message": message})
		},
	})

	app.Use(handlers.CheckToken(deps.Auth, false))
	app.Use(handlers.LoadNav(deps))
	app.Use(handlers.PopNotices(deps.Flash))
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	app.Get("/", deps.InventoryHandler.Home)

	acct := app.Group("/account")
	acct.Get("/login", deps.AccountHandler.LoginForm)
	acct.Post("/login", deps.AccountHandler.Login)
	acct.Get("/register", deps.AccountHandler.RegisterForm)
	acct.Post("/register", deps.AccountHandler.Register)
	acct.Get("/logout", deps.AccountHandler.Logout)
	acct.Get("/", handlers.RequireLogin(deps.Flash), deps.AccountHandler.Home)
	acct.Get("/update/:account_id", handlers.RequireLogin(deps.Flash), deps.AccountHandler.UpdateForm)
	acct.Post("/update", handlers.RequireLogin(deps.Flash), deps.AccountHandler.Update)
	acct.Post("/change-password", handlers.RequireLogin(deps.Flash), deps.AccountHandler.ChangePassword)

	inv := app.Group("/inv")
	inv.Get("/type/:classificationId", deps.InventoryHandler.ByClassification)
	inv.Get("/detail/:inventoryId", deps.InventoryHandler.Detail)
	inv.Get("/getInventory/:classification_id", deps.InventoryHandler.InventoryJSON)

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

	rev := app.Group("/review", handlers.RequireLogin(deps.Flash))
	rev.Post("/add", deps.ReviewHandler.Add)
	rev.Get("/user", deps.ReviewHandler.Mine)
	rev.Get("/edit/:reviewId", deps.ReviewHandler.EditForm)
	rev.Post("/update", deps.ReviewHandler.Update)
	rev.Get("/delete/:reviewId", deps.ReviewHandler.DeleteForm)
	rev.Post("/delete", deps.ReviewHandler.Delete)

	app.Use(func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	return app, deps, db
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
