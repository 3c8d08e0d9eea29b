package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackassure/compliance-api/internal/application/auth"
	"github.com/trackassure/compliance-api/internal/application/session"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	"github.com/trackassure/compliance-api/internal/infrastructure/memory"
	"github.com/trackassure/compliance-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

// fakeProvider is an in-memory authenticator strategy.
type fakeProvider struct {
	role     string
	user     *entity.User // returned on success; nil = reject
	err      error        // returned instead of a rejection when set
	attempts int
	logouts  []string // tokens passed to Logout
}

func (f *fakeProvider) Role() string { return f.role }

func (f *fakeProvider) Attempt(_ context.Context, _ auth.Credentials) (*entity.User, error) {
	f.attempts++
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil {
		return nil, errors.New("invalid credentials")
	}
	return f.user, nil
}

func (f *fakeProvider) Logout(_ context.Context, token string) error {
	f.logouts = append(f.logouts, token)
	return nil
}

func accepting(role string, user *entity.User) *fakeProvider {
	user.Role = role
	return &fakeProvider{role: role, user: user}
}

func rejecting(role string) *fakeProvider {
	return &fakeProvider{role: role}
}

func newAuthenticator(providers ...auth.Provider) (*auth.Authenticator, *session.Manager, *memory.KV) {
	kv := memory.NewKV()
	sessions := session.NewManager(kv, logger.Nop())
	return auth.NewAuthenticator(sessions, logger.Nop(), providers...), sessions, kv
}

var testCreds = auth.Credentials{Email: "a@b.com", Password: "x"}

// ──────────────────────────────────────────────────────────────────────────────
// Login fallback chain
// ──────────────────────────────────────────────────────────────────────────────

// Only the last backend accepts: the chain must walk all four and land on
// the rfc identity.
func TestLogin_FallsThroughToLastBackend(t *testing.T) {
	sa := rejecting(entity.RoleSuperAdmin)
	mfg := rejecting(entity.RoleManufacturer)
	dist := rejecting(entity.RoleDistributor)
	rfc := accepting(entity.RoleRFC, &entity.User{ID: "r-1", Email: "a@b.com", Name: "Nagpur RFC"})
	a, sessions, _ := newAuthenticator(sa, mfg, dist, rfc)

	result, ok := a.Login(context.Background(), testCreds)
	require.True(t, ok)
	assert.Equal(t, entity.RoleRFC, result.User.Role)
	assert.Equal(t, 1, sa.attempts)
	assert.Equal(t, 1, mfg.attempts)
	assert.Equal(t, 1, dist.attempts)
	assert.Equal(t, 1, rfc.attempts)

	sess := sessions.Load(context.Background(), result.SessionID)
	require.True(t, sess.IsAuthenticated)
	assert.Equal(t, "r-1", sess.User.ID)
	assert.Equal(t, entity.RoleRFC, sessions.ActiveRole(context.Background(), result.SessionID))
}

// Priority order: when the same credentials validate against both the
// manufacturer and distributor backends, the manufacturer (earlier in the
// chain) always wins and the distributor is never asked.
func TestLogin_PriorityOrderPicksFirstMatch(t *testing.T) {
	mfg := accepting(entity.RoleManufacturer, &entity.User{ID: "m-1", Email: "a@b.com", Status: entity.StatusApproved})
	dist := accepting(entity.RoleDistributor, &entity.User{ID: "d-1", Email: "a@b.com"})
	a, _, _ := newAuthenticator(rejecting(entity.RoleSuperAdmin), mfg, dist, rejecting(entity.RoleRFC))

	result, ok := a.Login(context.Background(), testCreds)
	require.True(t, ok)
	assert.Equal(t, entity.RoleManufacturer, result.User.Role)
	assert.Equal(t, "m-1", result.User.ID)
	assert.Equal(t, 0, dist.attempts, "chain must short-circuit on first success")
}

// Transport failures are swallowed exactly like credential rejections.
func TestLogin_BackendErrorTriggersFallback(t *testing.T) {
	sa := &fakeProvider{role: entity.RoleSuperAdmin, err: errors.New("connection refused")}
	dist := accepting(entity.RoleDistributor, &entity.User{ID: "d-2", Email: "a@b.com"})
	a, _, _ := newAuthenticator(sa, rejecting(entity.RoleManufacturer), dist, rejecting(entity.RoleRFC))

	result, ok := a.Login(context.Background(), testCreds)
	require.True(t, ok)
	assert.Equal(t, entity.RoleDistributor, result.User.Role)
}

// Fallback exhaustion: every backend rejects, login fails, and nothing is
// persisted.
func TestLogin_AllBackendsReject(t *testing.T) {
	a, _, kv := newAuthenticator(
		rejecting(entity.RoleSuperAdmin),
		rejecting(entity.RoleManufacturer),
		rejecting(entity.RoleDistributor),
		rejecting(entity.RoleRFC),
	)

	result, ok := a.Login(context.Background(), testCreds)
	assert.False(t, ok)
	assert.Nil(t, result)
	assert.Equal(t, 0, kv.Len(), "no session records on overall failure")
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_RevokesActiveRoleToken(t *testing.T) {
	rfc := accepting(entity.RoleRFC, &entity.User{ID: "r-2", Email: "a@b.com", BackendToken: "tok-rfc"})
	a, sessions, kv := newAuthenticator(rejecting(entity.RoleSuperAdmin), rejecting(entity.RoleManufacturer), rejecting(entity.RoleDistributor), rfc)

	result, ok := a.Login(context.Background(), testCreds)
	require.True(t, ok)

	require.NoError(t, a.Logout(context.Background(), result.SessionID))
	assert.Equal(t, []string{"tok-rfc"}, rfc.logouts, "the owning backend's token must be revoked")
	assert.Equal(t, 0, kv.Len())
	assert.False(t, sessions.Load(context.Background(), result.SessionID).IsAuthenticated)
}

// Idempotent logout: logging out an anonymous session is a safe no-op and
// performs no backend call.
func TestLogout_Idempotent(t *testing.T) {
	rfc := accepting(entity.RoleRFC, &entity.User{ID: "r-3", Email: "a@b.com", BackendToken: "tok"})
	a, _, _ := newAuthenticator(rfc)

	result, ok := a.Login(context.Background(), testCreds)
	require.True(t, ok)

	require.NoError(t, a.Logout(context.Background(), result.SessionID))
	require.NoError(t, a.Logout(context.Background(), result.SessionID))
	require.NoError(t, a.Logout(context.Background(), ""))
	assert.Len(t, rfc.logouts, 1, "second logout must not hit the backend again")
}

// A session whose active role has no registered provider (e.g. a role
// removed from the chain) still clears cleanly.
func TestLogout_UnknownRoleSkipsRevocation(t *testing.T) {
	rfc := accepting(entity.RoleRFC, &entity.User{ID: "r-4", Email: "a@b.com"})
	a, sessions, kv := newAuthenticator(rfc)

	result, ok := a.Login(context.Background(), testCreds)
	require.True(t, ok)

	// Rebuild the coordinator without the rfc provider.
	a2 := auth.NewAuthenticator(sessions, logger.Nop())
	require.NoError(t, a2.Logout(context.Background(), result.SessionID))
	assert.Equal(t, 0, kv.Len())
	assert.Empty(t, rfc.logouts)
}
