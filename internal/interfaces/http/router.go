package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/diego1198/inventory-frontend/internal/application/analytics"
	"github.com/diego1198/inventory-frontend/internal/application/checkout"
	"github.com/diego1198/inventory-frontend/internal/application/guard"
	"github.com/diego1198/inventory-frontend/internal/application/pages"
	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/application/resource"
	"github.com/diego1198/inventory-frontend/internal/domain/navigation"
	"github.com/diego1198/inventory-frontend/internal/infrastructure/session"
	"github.com/diego1198/inventory-frontend/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	Log         *logger.Logger
	Cookies     *session.CookieCodec
	Cache       *query.Cache
	JWTSecret   string
	Table       *navigation.Table
	PublicPaths []string // vacío = guard.DefaultPublicPaths
	Landing     string   // destino por defecto tras el login
	Fallback    string   // destino del guard de página

	Auth      *resource.AuthService
	Pages     *pages.Pages
	Inventory *resource.InventoryService
	Sales     *resource.SaleService
	Carts     *checkout.Carts
	Dashboard *appanalytics.DashboardUseCase
	Receipts  ReceiptRenderer
	Metrics   http.Handler // nil = sin /metrics
}

// Router registra las rutas del gateway.
func Router(app *fiber.App, deps RouterDeps) {
	route := guard.NewRouteGuard(deps.PublicPaths...)
	pageGuard := guard.NewPageGuard(deps.Table, route, deps.Fallback)

	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Log))
	app.Use(SessionMiddleware(deps.Cookies, deps.Cache, deps.JWTSecret))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.Auth, deps.Carts, route, deps.Table, AuthConfig{Landing: deps.Landing, Fallback: deps.Fallback})
	authGroup := app.Group("/auth")
	authGroup.Get("/login", authHandler.LoginPage)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)

	// Rutas protegidas: sesión + tabla de navegación
	protected := app.Group("/", RequireSession(route), RequirePage(pageGuard))
	protected.Post("/auth/logout", authHandler.Logout)

	sessionHandler := NewSessionHandler(deps.Table)
	protected.Get("/me", sessionHandler.Me)
	protected.Get("/navigation", sessionHandler.Navigation)

	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	protected.Get("/dashboard", dashboardHandler.Dashboard)
	protected.Get("/reports", dashboardHandler.Reports)

	NewPageHandler(deps.Pages.Products).Mount(protected.Group("/products"))
	NewPageHandler(deps.Pages.Categories).Mount(protected.Group("/categories"))
	NewPageHandler(deps.Pages.Customers).Mount(protected.Group("/customers"))

	users := protected.Group("/users")
	users.Get("/roles", Roles)
	NewPageHandler(deps.Pages.Users).Mount(users)

	inventoryHandler := NewInventoryHandler(deps.Pages.Movements, deps.Inventory)
	protected.Get("/inventory", inventoryHandler.List)
	protected.Post("/inventory/movements", inventoryHandler.RegisterMovement)

	// Ventas: /sales/new antes que /sales/:id
	saleHandler := NewSaleHandler(deps.Pages.Sales, deps.Sales, deps.Carts, deps.Receipts, deps.Log)
	sales := protected.Group("/sales")
	sales.Get("/new", saleHandler.Cart)
	sales.Delete("/new", saleHandler.CancelCart)
	sales.Post("/new/items", saleHandler.AddItem)
	sales.Patch("/new/items/:index", saleHandler.UpdateItem)
	sales.Delete("/new/items/:index", saleHandler.RemoveItem)
	sales.Post("/new/checkout", saleHandler.Checkout)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id/receipt.pdf", saleHandler.Receipt)
	sales.Get("/:id", saleHandler.GetByID)
}
