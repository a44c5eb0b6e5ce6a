package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-service/internal/api/http/handlers"
	"github.com/spec-kit/pharmacy-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	AdminUsers     *handlers.AdminUsersHandler
	DoctorUsers    *handlers.DoctorUsersHandler
	Drugs          *handlers.DrugsHandler
	Suppliers      *handlers.SuppliersHandler
	SalesReports   *handlers.SalesReportsHandler
	Orders         *handlers.OrdersHandler
	AuthMiddleware *auth.AuthMiddleware
	Policies       *auth.PolicyRegistry
}

// RegisterRoutes wires HTTP routes. Every protected route runs the same
// sequence: verify the bearer token, evaluate the endpoint's policy, then the
// handler validates and persists.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	adminOnly := auth.RequirePolicy(cfg.Policies, auth.PolicyAdmin)
	anyStaff := auth.RequirePolicy(cfg.Policies, auth.PolicyStaff)

	authGroup := app.Group("/auth")
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)
	authGroup.Post("/doctor/login", cfg.Auth.DoctorLogin)
	authGroup.Post("/admin/register", cfg.AuthMiddleware.Handle, adminOnly, cfg.Auth.AdminRegister)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	adminUsers := api.Group("/admin-users", adminOnly)
	adminUsers.Get("/", cfg.AdminUsers.List)
	adminUsers.Get("/:id", cfg.AdminUsers.Get)
	adminUsers.Post("/", cfg.AdminUsers.Create)
	adminUsers.Put("/:id", cfg.AdminUsers.Update)
	adminUsers.Delete("/:id", cfg.AdminUsers.Delete)

	doctorUsers := api.Group("/doctor-users")
	doctorUsers.Get("/", adminOnly, cfg.DoctorUsers.List)
	doctorUsers.Get("/:id", anyStaff, cfg.DoctorUsers.Get)
	doctorUsers.Post("/", adminOnly, cfg.DoctorUsers.Create)
	doctorUsers.Put("/:id", adminOnly, cfg.DoctorUsers.Update)
	doctorUsers.Delete("/:id", adminOnly, cfg.DoctorUsers.Delete)

	drugs := api.Group("/drugs")
	drugs.Get("/", anyStaff, cfg.Drugs.List)
	drugs.Get("/:id", anyStaff, cfg.Drugs.Get)
	drugs.Post("/", adminOnly, cfg.Drugs.Create)
	drugs.Put("/:id", adminOnly, cfg.Drugs.Update)
	drugs.Delete("/:id", adminOnly, cfg.Drugs.Delete)

	suppliers := api.Group("/suppliers", adminOnly)
	suppliers.Get("/", cfg.Suppliers.List)
	suppliers.Get("/:id", cfg.Suppliers.Get)
	suppliers.Post("/", cfg.Suppliers.Create)
	suppliers.Put("/:id", cfg.Suppliers.Update)
	suppliers.Delete("/:id", cfg.Suppliers.Delete)

	salesReports := api.Group("/sales-reports", adminOnly)
	salesReports.Get("/", cfg.SalesReports.List)
	salesReports.Get("/:id", cfg.SalesReports.Get)
	salesReports.Post("/", cfg.SalesReports.Create)
	salesReports.Put("/:id", cfg.SalesReports.Update)
	salesReports.Delete("/:id", cfg.SalesReports.Delete)

	orders := api.Group("/orders")
	orders.Get("/", anyStaff, cfg.Orders.List)
	orders.Get("/:id", anyStaff, cfg.Orders.Get)
	orders.Post("/", anyStaff, cfg.Orders.Create)
	orders.Put("/:id", adminOnly, cfg.Orders.Update)
	orders.Delete("/:id", adminOnly, cfg.Orders.Delete)
}
