package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/trackassure/compliance-api/internal/application/session"
	pkgjwt "github.com/trackassure/compliance-api/pkg/jwt"
)

// Locals keys set by WithSession.
const (
	LocalSession   = "session"
	LocalSessionID = "session_id"
)

// SessionCookie carries the gateway token for browser navigation; API
// clients send it as a Bearer header instead.
const SessionCookie = "ta_session"

// WithSession resolves the gateway token (Authorization header first, then
// the session cookie), loads the session context from the credential store
// and stores both in c.Locals. Requests without a valid token proceed with
// an anonymous context; the guards decide what that means per route.
func WithSession(jwtSecret string, sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			token = c.Cookies(SessionCookie)
		}
		sess := session.Anonymous()
		sid := ""
		if token != "" {
			id, _, err := pkgjwt.Parse(jwtSecret, token)
			if err == nil {
				sid = id
				sess = sessions.Load(c.Context(), sid)
			}
		}
		c.Locals(LocalSession, sess)
		c.Locals(LocalSessionID, sid)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// SessionFromCtx returns the session context placed by WithSession.
func SessionFromCtx(c *fiber.Ctx) session.Context {
	if v, ok := c.Locals(LocalSession).(session.Context); ok {
		return v
	}
	return session.Anonymous()
}

// SessionIDFromCtx returns the session id placed by WithSession ("" when
// anonymous).
func SessionIDFromCtx(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalSessionID).(string); ok {
		return v
	}
	return ""
}
