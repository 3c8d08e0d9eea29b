// Package backends holds the REST clients for the four role identity
// backends. Each client implements the auth.Provider port and normalizes
// its backend's response shape into the canonical User.
package backends

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trackassure/compliance-api/internal/application/auth"
	"github.com/trackassure/compliance-api/internal/domain"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	"github.com/trackassure/compliance-api/pkg/logger"
)

// defaultNames are the role-derived display names used when a backend sends
// neither name nor fullname.
var defaultNames = map[string]string{
	entity.RoleSuperAdmin:   "Super Admin",
	entity.RoleManufacturer: "Manufacturer",
	entity.RoleDistributor:  "Distributor",
	entity.RoleRFC:          "RFC",
}

var _ auth.Provider = (*Client)(nil)

// Client is the login/logout client for one role's backend.
type Client struct {
	role    string
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *logger.Logger
}

// NewClient builds a backend client. timeout bounds each attempt so one
// hung backend cannot stall the whole fallback chain.
func NewClient(role, baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		role:    role,
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: timeout,
		log:     log,
	}
}

// Role identifies the backend this client fronts.
func (c *Client) Role() string { return c.role }

// loginResponse is the wire shape shared by all four backends; the user
// payload itself differs per role and is normalized below.
type loginResponse struct {
	Status string          `json:"status"`
	Token  string          `json:"token"`
	User   json.RawMessage `json:"user"`
}

// Attempt POSTs the credentials to the backend's login endpoint. Any
// non-success status, transport failure or unparseable payload is an error;
// the coordinator treats them all as "try the next backend".
func (c *Client) Attempt(ctx context.Context, creds auth.Credentials) (*entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s backend: %w", c.role, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%s backend: read body: %w", c.role, err)
	}
	var out loginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%s backend: malformed response: %w", c.role, err)
	}
	if out.Status != "success" || len(out.User) == 0 {
		return nil, domain.ErrUnauthorized
	}
	user, err := c.normalize(out.User)
	if err != nil {
		return nil, err
	}
	user.BackendToken = out.Token
	return user, nil
}

// Logout revokes the backend token. Backends expose POST /logout with the
// token as a bearer credential.
func (c *Client) Logout(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/logout", nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s backend: logout: %w", c.role, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s backend: logout: status %d", c.role, resp.StatusCode)
	}
	return nil
}

// normalize maps a role-specific user payload into the canonical User.
// Field names differ per backend: the manufacturer response nests many KYC
// fields and carries the approval status; distributor/rfc payloads use name
// or fullname interchangeably. Preference: name, then fullname, then a
// role-derived default.
func (c *Client) normalize(raw json.RawMessage) (*entity.User, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%s backend: malformed user payload: %w", c.role, err)
	}

	id := stringField(payload, "id")
	if id == "" {
		id = stringField(payload, "_id")
	}
	if id == "" {
		return nil, fmt.Errorf("%s backend: user payload without id", c.role)
	}

	name := stringField(payload, "name")
	if name == "" {
		name = stringField(payload, "fullname")
	}
	if name == "" {
		name = defaultNames[c.role]
	}

	user := &entity.User{
		ID:    id,
		Email: stringField(payload, "email"),
		Name:  name,
		Role:  c.role,
	}
	if c.role == entity.RoleManufacturer {
		user.Status = stringField(payload, "status")
	}

	// Everything else (documents, address, tax identifiers) rides along
	// opaquely; it is data, not a control-flow input.
	profile := make(map[string]any)
	for k, v := range payload {
		switch k {
		case "id", "_id", "email", "name", "fullname", "status":
		default:
			profile[k] = v
		}
	}
	if len(profile) > 0 {
		user.Profile = profile
	}
	return user, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
