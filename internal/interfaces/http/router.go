package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trackassure/compliance-api/internal/application/auth"
	"github.com/trackassure/compliance-api/internal/application/session"
	"github.com/trackassure/compliance-api/internal/application/usecase"
	"github.com/trackassure/compliance-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Authenticator *auth.Authenticator
	Sessions      *session.Manager
	DeviceUC      *usecase.DeviceUseCase
	PlanUC        *usecase.PlanUseCase
	OperatorUC    *usecase.OperatorUseCase
	JWT           JWTSettings
	LoginPerMin   int
	LoginBurst    int
}

// Router registers the navigation surface and the API routes. Must be
// called after any routes that should bypass the session middleware
// (health, metrics): the catch-all at the end claims every unknown path.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(WithSession(deps.JWT.Secret, deps.Sessions))

	// Navigation surface. Order matters: the onboarding subtree must be
	// registered before the manufacturer wildcard.
	app.Get("/", Root)
	app.Get("/login", PublicPage("login"))
	app.Get("/register", PublicPage("register"))

	app.Get("/super-admin", Guard(entity.RoleSuperAdmin), Page("super-admin"))
	app.Get("/super-admin/*", Guard(entity.RoleSuperAdmin), Page("super-admin"))

	app.Get("/manufacturer/onboarding", Guard(entity.RoleManufacturer), ManufacturerGate(false), Page("onboarding"))
	app.Get("/manufacturer/onboarding/*", Guard(entity.RoleManufacturer), ManufacturerGate(false), Page("onboarding"))
	app.Get("/manufacturer", Guard(entity.RoleManufacturer), ManufacturerGate(true), Page("manufacturer"))
	app.Get("/manufacturer/*", Guard(entity.RoleManufacturer), ManufacturerGate(true), Page("manufacturer"))

	app.Get("/distributor", Guard(entity.RoleDistributor), Page("distributor"))
	app.Get("/distributor/*", Guard(entity.RoleDistributor), Page("distributor"))
	app.Get("/rfc", Guard(entity.RoleRFC), Page("rfc"))
	app.Get("/rfc/*", Guard(entity.RoleRFC), Page("rfc"))

	// API
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.Authenticator, deps.JWT)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", LoginRateLimit(deps.LoginPerMin, deps.LoginBurst), authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	api.Get("/session", authHandler.Session)
	api.Get("/navigate", authHandler.Navigate)

	// Devices (approved manufacturers only)
	devices := api.Group("/devices", RequireRole(entity.RoleManufacturer), RequireApproved())
	deviceHandler := NewDeviceHandler(deps.DeviceUC)
	devices.Post("/", deviceHandler.Create)
	devices.Get("/", deviceHandler.List)
	devices.Get("/:id", deviceHandler.GetByID)
	devices.Put("/:id", deviceHandler.Update)

	// Plans (readable by any authenticated role, managed by super-admin)
	plans := api.Group("/plans", RequireRole(entity.Roles...))
	planHandler := NewPlanHandler(deps.PlanUC)
	plans.Get("/", planHandler.List)
	plans.Get("/:id", planHandler.GetByID)
	plans.Post("/", RequireRole(entity.RoleSuperAdmin), planHandler.Create)
	plans.Put("/:id", RequireRole(entity.RoleSuperAdmin), planHandler.Update)

	// Staff accounts (super-admin console)
	operators := api.Group("/operators", RequireRole(entity.RoleSuperAdmin))
	operatorHandler := NewOperatorHandler(deps.OperatorUC)
	operators.Post("/", operatorHandler.Register)
	operators.Get("/", operatorHandler.List)

	// Anything else resolves back through "/"
	app.Use(NotFound)
}
