package dto

// LoginRequest credentials for the multi-backend login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse the canonical identity returned to the dashboard shell.
type UserResponse struct {
	ID      string         `json:"id"`
	Email   string         `json:"email"`
	Name    string         `json:"name"`
	Role    string         `json:"role"`
	Status  string         `json:"status,omitempty"`
	Profile map[string]any `json:"profile,omitempty"`
}

// LoginResponse gateway session token plus the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SessionResponse the session context the dashboard boots from.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
	HomePath      string        `json:"home_path"`
}

// NavigateResponse outcome of a route-guard evaluation.
type NavigateResponse struct {
	Allow    bool   `json:"allow"`
	Redirect string `json:"redirect,omitempty"`
}
