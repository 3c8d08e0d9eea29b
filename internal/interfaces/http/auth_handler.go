package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/trackassure/compliance-api/internal/application/auth"
	"github.com/trackassure/compliance-api/internal/application/dto"
	"github.com/trackassure/compliance-api/internal/application/guard"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	pkgjwt "github.com/trackassure/compliance-api/pkg/jwt"
)

// JWTSettings is what the auth handler needs to mint gateway tokens.
type JWTSettings struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// AuthHandler exposes the multi-backend login, logout and session
// introspection.
type AuthHandler struct {
	authenticator *auth.Authenticator
	jwt           JWTSettings
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(authenticator *auth.Authenticator, jwt JWTSettings) *AuthHandler {
	return &AuthHandler{authenticator: authenticator, jwt: jwt}
}

// Login godoc
// @Summary      Login against the four role backends in priority order
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email and password are required"})
	}
	result, ok := h.authenticator.Login(c.Context(), auth.Credentials{Email: in.Email, Password: in.Password})
	if !ok {
		// No distinction between wrong password and unreachable backend:
		// every backend either rejected or could not be asked.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid credentials"})
	}
	token, err := pkgjwt.Generate(h.jwt.Secret, result.SessionID, result.User.Role, h.jwt.Issuer, h.jwt.ExpMinutes)
	if err != nil {
		_ = h.authenticator.Logout(c.Context(), result.SessionID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(h.jwt.ExpMinutes) * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(dto.LoginResponse{Token: token, User: toUserResponse(result.User)})
}

// Logout godoc
// @Summary      Revoke the active role's backend token and clear the session
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := SessionIDFromCtx(c)
	if err := h.authenticator.Logout(c.Context(), sid); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Cookie(&fiber.Cookie{Name: SessionCookie, Value: "", Expires: time.Now().Add(-time.Hour), HTTPOnly: true})
	return c.SendStatus(fiber.StatusNoContent)
}

// Session godoc
// @Summary      Return the session context the dashboard shell boots from
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess := SessionFromCtx(c)
	out := dto.SessionResponse{
		Authenticated: sess.IsAuthenticated,
		HomePath:      guard.RootPath(sess),
	}
	if sess.IsAuthenticated {
		u := toUserResponse(sess.User)
		out.User = &u
	}
	return c.JSON(out)
}

// Navigate godoc
// @Summary      Evaluate the route guard for a path without navigating
// @Tags         auth
// @Produce      json
// @Param        path  query  string  true  "requested path"
// @Success      200   {object}  dto.NavigateResponse
// @Router       /api/navigate [get]
func (h *AuthHandler) Navigate(c *fiber.Ctx) error {
	path := c.Query("path", "/")
	d := guard.Evaluate(SessionFromCtx(c), path, allowedRolesFor(path)...)
	out := dto.NavigateResponse{Allow: d.Action == guard.Allow}
	if d.Action == guard.Redirect {
		out.Redirect = d.Target
	}
	return c.JSON(out)
}

// allowedRolesFor mirrors the navigation route table: each dashboard
// subtree is restricted to its own role.
func allowedRolesFor(path string) []string {
	for _, role := range entity.Roles {
		home, _ := guard.HomePath(role)
		if path == home || (len(path) > len(home) && path[:len(home)+1] == home+"/") {
			return []string{role}
		}
	}
	return nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	if u == nil {
		return dto.UserResponse{}
	}
	return dto.UserResponse{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Role:    u.Role,
		Status:  u.Status,
		Profile: u.Profile,
	}
}
