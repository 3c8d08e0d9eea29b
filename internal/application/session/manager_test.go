package session_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackassure/compliance-api/internal/application/session"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	"github.com/trackassure/compliance-api/internal/infrastructure/memory"
	"github.com/trackassure/compliance-api/pkg/logger"
)

func newManager() (*session.Manager, *memory.KV) {
	kv := memory.NewKV()
	return session.NewManager(kv, logger.Nop()), kv
}

func TestEstablishAndLoad_RoundTrip(t *testing.T) {
	m, kv := newManager()
	ctx := context.Background()

	sid, err := m.Establish(ctx, &entity.User{
		ID:    "u-1",
		Email: "a@b.com",
		Name:  "Asha",
		Role:  entity.RoleDistributor,
	})
	require.NoError(t, err)
	require.NotEmpty(t, sid)
	assert.Equal(t, 2, kv.Len(), "exactly two records: user json + role tag")

	sess := m.Load(ctx, sid)
	require.True(t, sess.IsAuthenticated)
	require.NotNil(t, sess.User)
	assert.False(t, sess.IsLoading)
	assert.Equal(t, "u-1", sess.User.ID)
	assert.Equal(t, entity.RoleDistributor, sess.User.Role)
	assert.Equal(t, entity.RoleDistributor, m.ActiveRole(ctx, sid))
}

func TestLoad_AbsentSession_IsAnonymous(t *testing.T) {
	m, _ := newManager()

	sess := m.Load(context.Background(), "01J0000000000000000000000")
	assert.False(t, sess.IsAuthenticated)
	assert.Nil(t, sess.User)
	assert.False(t, sess.IsLoading)
}

// Corruption recovery: any malformed stored record must resolve to an
// anonymous session and the bad record must be removed, without an error
// surfacing anywhere.
func TestLoad_MalformedRecord_DiscardsAndRecovers(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"not json", "{{{definitely-not-json"},
		{"empty object", "{}"},
		{"wrong shape", `{"foo": 42}`},
		{"unknown role", `{"id":"u-9","email":"x@y.com","role":"auditor"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, kv := newManager()
			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, "session:sid-1:user", tc.value))
			require.NoError(t, kv.Set(ctx, "session:sid-1:role", "distributor"))

			sess := m.Load(ctx, "sid-1")
			assert.False(t, sess.IsAuthenticated)
			assert.Nil(t, sess.User)
			assert.False(t, sess.IsLoading)
			assert.Equal(t, 0, kv.Len(), "corrupt records must be removed")
		})
	}
}

func TestLoad_PreservesOpaqueProfile(t *testing.T) {
	m, _ := newManager()
	ctx := context.Background()

	user := &entity.User{
		ID:     "m-1",
		Email:  "mfg@corp.com",
		Name:   "Acme Devices",
		Role:   entity.RoleManufacturer,
		Status: entity.StatusPending,
		Profile: map[string]any{
			"gst_number": "29ABCDE1234F1Z5",
			"documents":  map[string]any{"pan_card": "uploaded"},
		},
	}
	sid, err := m.Establish(ctx, user)
	require.NoError(t, err)

	sess := m.Load(ctx, sid)
	require.True(t, sess.IsAuthenticated)
	assert.Equal(t, entity.StatusPending, sess.User.Status)
	assert.Equal(t, "29ABCDE1234F1Z5", sess.User.Profile["gst_number"])
}

func TestClear_Idempotent(t *testing.T) {
	m, kv := newManager()
	ctx := context.Background()

	sid, err := m.Establish(ctx, &entity.User{ID: "u-2", Role: entity.RoleRFC})
	require.NoError(t, err)

	require.NoError(t, m.Clear(ctx, sid))
	assert.Equal(t, 0, kv.Len())
	assert.False(t, m.Load(ctx, sid).IsAuthenticated)

	// Clearing again (and clearing an empty sid) must be safe no-ops.
	require.NoError(t, m.Clear(ctx, sid))
	require.NoError(t, m.Clear(ctx, ""))
}

func TestEstablish_WritesValidJSON(t *testing.T) {
	m, kv := newManager()
	ctx := context.Background()

	sid, err := m.Establish(ctx, &entity.User{ID: "u-3", Email: "c@d.com", Role: entity.RoleSuperAdmin})
	require.NoError(t, err)

	raw, ok, err := kv.Get(ctx, "session:"+sid+":user")
	require.NoError(t, err)
	require.True(t, ok)

	var u entity.User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))
	assert.Equal(t, "u-3", u.ID)
}
