package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Staff          *handlers.StaffHandler
	Orders         *handlers.OrdersHandler
	Tickets        *handlers.TicketsHandler
	Products       *handlers.ProductsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", cfg.Users.Register)
	authGroup.Post("/users/login", cfg.Users.Login)
	authGroup.Post("/admin/login", cfg.Staff.AdminLogin)
	authGroup.Post("/callcentre/login", cfg.Staff.CallCentreLogin)

	users := app.Group("/users", cfg.AuthMiddleware.RequireCustomer())
	users.Get("/me", cfg.Users.Me)
	users.Put("/me", cfg.Users.UpdateMe)
	users.Post("/accept-policies", cfg.Users.AcceptPolicies)
	users.Get("/addresses", cfg.Users.ListAddresses)
	users.Post("/addresses", cfg.Users.SaveAddress)

	orders := app.Group("/orders")
	orders.Get("/AllOrders", cfg.AuthMiddleware.RequireAdmin(), cfg.Orders.AllOrders)
	orders.Post("/place", cfg.AuthMiddleware.RequireCustomer(), cfg.Orders.Place)
	orders.Get("/my-orders", cfg.AuthMiddleware.RequireCustomer(), cfg.Orders.MyOrders)
	orders.Delete("/:id", cfg.AuthMiddleware.RequireCustomer(), cfg.Orders.Cancel)
	orders.Put("/:id/change-timeslot", cfg.AuthMiddleware.RequireCustomer(), cfg.Orders.ChangeTimeSlot)

	// Static ticket paths register before the parameterised ones so "all"
	// and "user" never match as ticket ids.
	tickets := app.Group("/tickets")
	tickets.Get("/all", cfg.AuthMiddleware.RequireSupport(), cfg.Tickets.All)
	tickets.Get("/user/:userId", cfg.AuthMiddleware.RequireSupport(), cfg.Tickets.ByUser)
	tickets.Post("/", cfg.AuthMiddleware.RequireCustomer(), cfg.Tickets.Create)
	tickets.Get("/", cfg.AuthMiddleware.RequireCustomer(), cfg.Tickets.MyTickets)
	tickets.Get("/:id", cfg.AuthMiddleware.RequireSupport(), cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.AuthMiddleware.RequireSupport(), cfg.Tickets.UpdateStatus)
	tickets.Delete("/:id", cfg.AuthMiddleware.RequireAdmin(), cfg.Tickets.Delete)

	products := app.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Post("/", cfg.AuthMiddleware.RequireAdmin(), cfg.Products.Create)
	products.Patch("/:id/active", cfg.AuthMiddleware.RequireAdmin(), cfg.Products.SetActive)

	app.Get("/dashboard/stats", cfg.AuthMiddleware.RequireAdmin(), cfg.Dashboard.Stats)
}
