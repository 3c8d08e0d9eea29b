package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/trackassure/compliance-api/internal/application/dto"
	"github.com/trackassure/compliance-api/internal/application/guard"
	"github.com/trackassure/compliance-api/internal/domain/entity"
)

var guardRedirectsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "guard_redirects_total",
		Help: "Route-guard redirects by target.",
	},
	[]string{"target"},
)

func init() {
	prometheus.MustRegister(guardRedirectsTotal)
}

// Guard applies the route-guard state machine to a navigation route. The
// session context comes from WithSession; the decision is re-evaluated on
// every request, so role or status changes take effect immediately.
func Guard(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return applyDecision(c, guard.Evaluate(SessionFromCtx(c), c.Path(), allowedRoles...))
	}
}

// ManufacturerGate applies the status gate to the manufacturer subtrees:
// requireApproved=true for the dashboard, false for onboarding.
func ManufacturerGate(requireApproved bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return applyDecision(c, guard.StatusGate(SessionFromCtx(c), requireApproved))
	}
}

func applyDecision(c *fiber.Ctx, d guard.Decision) error {
	switch d.Action {
	case guard.Redirect:
		guardRedirectsTotal.WithLabelValues(d.Target).Inc()
		return c.Redirect(d.Target, fiber.StatusFound)
	case guard.Wait:
		// Session not resolved yet: placeholder, no routing decision.
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"loading": true})
	default:
		return c.Next()
	}
}

// RequireApproved blocks API access for manufacturers that have not been
// approved yet (PENDING/ACKNOWLEDGED or anything unrecognized). Other roles
// pass through; pair with RequireRole for role restrictions.
func RequireApproved() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFromCtx(c)
		if sess.IsAuthenticated && sess.User != nil &&
			sess.User.Role == entity.RoleManufacturer && !sess.User.Approved() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_APPROVED", Message: "manufacturer account pending approval"})
		}
		return c.Next()
	}
}

// RequireRole authorizes API routes (JSON errors instead of redirects).
// Must run after WithSession.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFromCtx(c)
		if !sess.IsAuthenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
		}
		role := sess.Role()
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "role not allowed for this resource"})
	}
}
