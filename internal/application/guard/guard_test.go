package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trackassure/compliance-api/internal/application/guard"
	"github.com/trackassure/compliance-api/internal/application/session"
	"github.com/trackassure/compliance-api/internal/domain/entity"
)

func authedAs(role string) session.Context {
	return session.Authenticated(&entity.User{ID: "u-1", Role: role})
}

func manufacturerWith(status string) session.Context {
	return session.Authenticated(&entity.User{ID: "m-1", Role: entity.RoleManufacturer, Status: status})
}

func TestEvaluate_LoadingMakesNoDecision(t *testing.T) {
	d := guard.Evaluate(session.Context{IsLoading: true}, "/distributor", entity.RoleDistributor)
	assert.Equal(t, guard.Wait, d.Action)
	assert.Empty(t, d.Target)
}

func TestEvaluate_AnonymousRedirectsToLogin(t *testing.T) {
	d := guard.Evaluate(session.Anonymous(), "/super-admin")
	assert.Equal(t, guard.Redirect, d.Action)
	assert.Equal(t, guard.PathLogin, d.Target)
}

// Role isolation: an authenticated session requesting another role's
// subtree is sent to its own home, not to login.
func TestEvaluate_RoleIsolation(t *testing.T) {
	dist := authedAs(entity.RoleDistributor)
	cases := []struct {
		path    string
		allowed string
	}{
		{"/super-admin", entity.RoleSuperAdmin},
		{"/super-admin/users", entity.RoleSuperAdmin},
		{"/manufacturer/devices", entity.RoleManufacturer},
		{"/rfc", entity.RoleRFC},
	}
	for _, tc := range cases {
		d := guard.Evaluate(dist, tc.path, tc.allowed)
		assert.Equal(t, guard.Redirect, d.Action, tc.path)
		assert.Equal(t, "/distributor", d.Target, tc.path)
	}
}

func TestEvaluate_AllowedRoleOwnSubtree(t *testing.T) {
	d := guard.Evaluate(authedAs(entity.RoleSuperAdmin), "/super-admin/plans", entity.RoleSuperAdmin)
	assert.Equal(t, guard.Allow, d.Action)
}

// An unapproved manufacturer is confined to the onboarding subtree no
// matter what route is requested; PENDING, ACKNOWLEDGED and unknown
// statuses are all "not yet approved".
func TestEvaluate_UnapprovedManufacturerConfinedToOnboarding(t *testing.T) {
	for _, status := range []string{entity.StatusPending, entity.StatusAcknowledged, "", "SOMETHING_NEW"} {
		sess := manufacturerWith(status)

		d := guard.Evaluate(sess, "/manufacturer", entity.RoleManufacturer)
		assert.Equal(t, guard.Redirect, d.Action, status)
		assert.Equal(t, guard.PathOnboarding, d.Target, status)

		d = guard.Evaluate(sess, guard.PathOnboarding, entity.RoleManufacturer)
		assert.Equal(t, guard.Allow, d.Action, status)

		d = guard.Evaluate(sess, guard.PathOnboarding+"/documents", entity.RoleManufacturer)
		assert.Equal(t, guard.Allow, d.Action, status)
	}
}

func TestEvaluate_NoRestriction_AnyAuthenticatedRole(t *testing.T) {
	d := guard.Evaluate(authedAs(entity.RoleRFC), "/rfc/devices")
	assert.Equal(t, guard.Allow, d.Action)
}

// ──────────────────────────────────────────────────────────────────────────────
// Status gate
// ──────────────────────────────────────────────────────────────────────────────

// Status-gate symmetry: unapproved manufacturers bounce from the dashboard
// to onboarding; approved manufacturers bounce from onboarding to the
// dashboard.
func TestStatusGate_Symmetry(t *testing.T) {
	pending := manufacturerWith(entity.StatusPending)
	d := guard.StatusGate(pending, true)
	assert.Equal(t, guard.Redirect, d.Action)
	assert.Equal(t, guard.PathOnboarding, d.Target)

	approved := manufacturerWith(entity.StatusApproved)
	d = guard.StatusGate(approved, false)
	assert.Equal(t, guard.Redirect, d.Action)
	assert.Equal(t, "/manufacturer", d.Target)

	assert.Equal(t, guard.Allow, guard.StatusGate(approved, true).Action)
	assert.Equal(t, guard.Allow, guard.StatusGate(pending, false).Action)
}

func TestStatusGate_NonManufacturerRedirectsToLogin(t *testing.T) {
	for _, sess := range []session.Context{session.Anonymous(), authedAs(entity.RoleDistributor)} {
		d := guard.StatusGate(sess, true)
		assert.Equal(t, guard.Redirect, d.Action)
		assert.Equal(t, guard.PathLogin, d.Target)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Root resolution and the role→home map
// ──────────────────────────────────────────────────────────────────────────────

func TestRootPath_Table(t *testing.T) {
	cases := []struct {
		name string
		sess session.Context
		want string
	}{
		{"anonymous", session.Anonymous(), "/login"},
		{"super-admin", authedAs(entity.RoleSuperAdmin), "/super-admin"},
		{"distributor", authedAs(entity.RoleDistributor), "/distributor"},
		{"rfc", authedAs(entity.RoleRFC), "/rfc"},
		{"approved manufacturer", manufacturerWith(entity.StatusApproved), "/manufacturer"},
		{"pending manufacturer", manufacturerWith(entity.StatusPending), guard.PathOnboarding},
		{"acknowledged manufacturer", manufacturerWith(entity.StatusAcknowledged), guard.PathOnboarding},
		{"unrecognized role", authedAs("auditor"), "/login"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, guard.RootPath(tc.sess))
		})
	}
}

// The role→home mapping must be total over the known roles and closed for
// anything else.
func TestHomePath_TotalOverKnownRoles(t *testing.T) {
	for _, role := range entity.Roles {
		home, ok := guard.HomePath(role)
		assert.True(t, ok, role)
		assert.NotEmpty(t, home, role)
	}
	_, ok := guard.HomePath("auditor")
	assert.False(t, ok)
}
