package auth

import (
	"context"

	"github.com/trackassure/compliance-api/internal/application/session"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	"github.com/trackassure/compliance-api/pkg/logger"
)

// Result is a successful login: the established session id and the
// normalized user.
type Result struct {
	SessionID string
	User      *entity.User
}

// Authenticator coordinates the multi-backend login: it walks an ordered
// list of provider strategies and short-circuits on the first success.
type Authenticator struct {
	providers []Provider
	sessions  *session.Manager
	log       *logger.Logger
}

// NewAuthenticator builds the coordinator. Providers must be passed in
// priority order (see PriorityOrder).
func NewAuthenticator(sessions *session.Manager, log *logger.Logger, providers ...Provider) *Authenticator {
	return &Authenticator{providers: providers, sessions: sessions, log: log}
}

// Login probes each backend in order with the same credentials. A rejected
// credential, transport failure or malformed response moves on to the next
// provider; the first accepted login is normalized, persisted (user record
// plus active-role tag) and returned. When every backend rejects, ok is
// false and nothing is persisted.
func (a *Authenticator) Login(ctx context.Context, creds Credentials) (*Result, bool) {
	for _, p := range a.providers {
		user, err := p.Attempt(ctx, creds)
		if err != nil || user == nil {
			loginAttemptsTotal.WithLabelValues(p.Role(), "rejected").Inc()
			a.log.Debug().Str("backend", p.Role()).Err(err).Msg("login attempt rejected, trying next backend")
			continue
		}
		sid, err := a.sessions.Establish(ctx, user)
		if err != nil {
			// The backend accepted but we could not persist the session;
			// surface as overall failure rather than a half-open session.
			a.log.Error().Err(err).Str("backend", p.Role()).Msg("login: persisting session failed")
			return nil, false
		}
		loginAttemptsTotal.WithLabelValues(p.Role(), "success").Inc()
		a.log.Info().Str("backend", p.Role()).Str("user_id", user.ID).Msg("login accepted")
		return &Result{SessionID: sid, User: user}, true
	}
	loginExhaustedTotal.Inc()
	return nil, false
}

// Logout revokes the backend token for the session's active role, then
// clears both persisted records. Idempotent: logging out an anonymous or
// already-cleared session is a no-op and touches no backend.
func (a *Authenticator) Logout(ctx context.Context, sid string) error {
	sess := a.sessions.Load(ctx, sid)
	if !sess.IsAuthenticated {
		return nil
	}
	role := a.sessions.ActiveRole(ctx, sid)
	if p := a.providerFor(role); p != nil {
		// Revocation failure must not keep the session alive locally.
		if err := p.Logout(ctx, sess.User.BackendToken); err != nil {
			a.log.Warn().Err(err).Str("backend", role).Msg("logout: token revocation failed")
		}
		logoutTotal.WithLabelValues(role).Inc()
	}
	return a.sessions.Clear(ctx, sid)
}

func (a *Authenticator) providerFor(role string) Provider {
	for _, p := range a.providers {
		if p.Role() == role {
			return p
		}
	}
	return nil
}
