package session

import (
	"context"
	"crypto/rand"
	"encoding/json"

	"github.com/oklog/ulid/v2"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	"github.com/trackassure/compliance-api/internal/domain/repository"
	"github.com/trackassure/compliance-api/pkg/logger"
)

// Context is the session state every routing decision reads. A session is
// either fully authenticated (User set) or fully anonymous (User nil); no
// partial states exist. IsLoading covers the window before the credential
// store has been consulted; consumers must not route while it is set.
type Context struct {
	User            *entity.User
	IsAuthenticated bool
	IsLoading       bool
}

// Anonymous returns a resolved, unauthenticated context.
func Anonymous() Context {
	return Context{}
}

// Authenticated returns a resolved context for the given user.
func Authenticated(u *entity.User) Context {
	return Context{User: u, IsAuthenticated: true}
}

// Role returns the session's role, or "" when anonymous.
func (c Context) Role() string {
	if !c.IsAuthenticated || c.User == nil {
		return ""
	}
	return c.User.Role
}

// Manager owns the credential store lifecycle: exactly two persisted records
// per session, the canonical user JSON and the active-role tag. Only the
// authenticator (login) and Clear (logout) write; everything else reads.
type Manager struct {
	kv  repository.KVStore
	log *logger.Logger
}

// NewManager builds a session manager over the given store.
func NewManager(kv repository.KVStore, log *logger.Logger) *Manager {
	return &Manager{kv: kv, log: log}
}

func userKey(sid string) string { return "session:" + sid + ":user" }
func roleKey(sid string) string { return "session:" + sid + ":role" }

// Establish persists a fresh session for the user and returns its id.
// Both records are written; if the second write fails the first is rolled
// back so a guard evaluation never observes a half-written session.
func (m *Manager) Establish(ctx context.Context, u *entity.User) (string, error) {
	raw, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	sid := ulid.MustNew(ulid.Now(), rand.Reader).String()
	if err := m.kv.Set(ctx, userKey(sid), string(raw)); err != nil {
		return "", err
	}
	if err := m.kv.Set(ctx, roleKey(sid), u.Role); err != nil {
		_ = m.kv.Remove(ctx, userKey(sid))
		return "", err
	}
	return sid, nil
}

// Load restores the session context for the given id. Absent record means
// anonymous; a malformed record is discarded and the session resolves to
// anonymous. Load never fails and never leaves IsLoading set.
func (m *Manager) Load(ctx context.Context, sid string) Context {
	if sid == "" {
		return Anonymous()
	}
	raw, ok, err := m.kv.Get(ctx, userKey(sid))
	if err != nil {
		m.log.Warn().Err(err).Msg("session: credential store read failed")
		return Anonymous()
	}
	if !ok {
		return Anonymous()
	}
	var u entity.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" || !entity.ValidRole(u.Role) {
		// Corrupt record: drop it and recover to anonymous.
		m.log.Warn().Str("session_id", sid).Msg("session: discarding malformed user record")
		_ = m.kv.Remove(ctx, userKey(sid))
		_ = m.kv.Remove(ctx, roleKey(sid))
		return Anonymous()
	}
	return Authenticated(&u)
}

// ActiveRole returns the persisted active-role tag, or "" when absent.
// Logout uses it to pick which backend token to revoke.
func (m *Manager) ActiveRole(ctx context.Context, sid string) string {
	if sid == "" {
		return ""
	}
	role, ok, err := m.kv.Get(ctx, roleKey(sid))
	if err != nil || !ok {
		return ""
	}
	return role
}

// Clear removes both persisted records. Safe to call on an already-cleared
// session.
func (m *Manager) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := m.kv.Remove(ctx, userKey(sid)); err != nil {
		return err
	}
	return m.kv.Remove(ctx, roleKey(sid))
}
