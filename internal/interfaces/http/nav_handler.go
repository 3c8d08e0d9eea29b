package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trackassure/compliance-api/internal/application/guard"
)

// Navigation handlers for the dashboard shell. The SPA owns the rendering;
// these routes carry the redirect semantics, so a plain browser navigation
// always lands on the right subtree for the session.

// Root resolves "/" from the session's role and approval status.
func Root(c *fiber.Ctx) error {
	return c.Redirect(guard.RootPath(SessionFromCtx(c)), fiber.StatusFound)
}

// PublicPage serves the login/register entry points. An authenticated
// session is bounced straight to its home instead.
func PublicPage(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFromCtx(c)
		if sess.IsAuthenticated {
			return c.Redirect(guard.RootPath(sess), fiber.StatusFound)
		}
		return c.JSON(fiber.Map{"page": name})
	}
}

// Page serves a guarded dashboard page descriptor; the guards ran before
// this handler.
func Page(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": name, "path": c.Path()})
	}
}

// NotFound sends any unknown path back to "/", which re-resolves from the
// session.
func NotFound(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusFound)
}
