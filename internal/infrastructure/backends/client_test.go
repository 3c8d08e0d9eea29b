package backends_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackassure/compliance-api/internal/application/auth"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	"github.com/trackassure/compliance-api/internal/infrastructure/backends"
	"github.com/trackassure/compliance-api/pkg/logger"
)

const testTimeout = 2 * time.Second

var testCreds = auth.Credentials{Email: "a@b.com", Password: "x"}

func serveJSON(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAttempt_NormalizesDistributorFullname(t *testing.T) {
	srv := serveJSON(t, http.StatusOK,
		`{"status":"success","token":"tok-d","user":{"id":"d-1","email":"a@b.com","fullname":"Ravi Kumar"}}`)
	c := backends.NewClient(entity.RoleDistributor, srv.URL, testTimeout, logger.Nop())

	user, err := c.Attempt(context.Background(), testCreds)
	require.NoError(t, err)
	assert.Equal(t, "d-1", user.ID)
	assert.Equal(t, "Ravi Kumar", user.Name, "fullname is the fallback when name is absent")
	assert.Equal(t, entity.RoleDistributor, user.Role)
	assert.Equal(t, "tok-d", user.BackendToken)
}

func TestAttempt_PrefersNameOverFullname(t *testing.T) {
	srv := serveJSON(t, http.StatusOK,
		`{"status":"success","user":{"id":"r-1","name":"Nagpur RFC","fullname":"Regional Facilitation Centre Nagpur"}}`)
	c := backends.NewClient(entity.RoleRFC, srv.URL, testTimeout, logger.Nop())

	user, err := c.Attempt(context.Background(), testCreds)
	require.NoError(t, err)
	assert.Equal(t, "Nagpur RFC", user.Name)
}

func TestAttempt_DefaultsNameFromRole(t *testing.T) {
	srv := serveJSON(t, http.StatusOK,
		`{"status":"success","user":{"id":"d-2","email":"a@b.com"}}`)
	c := backends.NewClient(entity.RoleDistributor, srv.URL, testTimeout, logger.Nop())

	user, err := c.Attempt(context.Background(), testCreds)
	require.NoError(t, err)
	assert.Equal(t, "Distributor", user.Name)
}

// The manufacturer payload nests KYC fields and carries the approval
// status; the status becomes control flow, the rest rides opaquely in the
// profile.
func TestAttempt_ManufacturerStatusAndKYC(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{
		"status": "success",
		"token": "tok-m",
		"user": {
			"_id": "m-1",
			"email": "mfg@corp.com",
			"name": "Acme Devices",
			"status": "ACKNOWLEDGED",
			"gst_number": "29ABCDE1234F1Z5",
			"pan_number": "ABCDE1234F",
			"documents": {"pan_card": "uploaded", "gst_certificate": "uploaded"},
			"address": {"city": "Pune", "state": "MH"}
		}
	}`)
	c := backends.NewClient(entity.RoleManufacturer, srv.URL, testTimeout, logger.Nop())

	user, err := c.Attempt(context.Background(), testCreds)
	require.NoError(t, err)
	assert.Equal(t, "m-1", user.ID, "_id is accepted as the identifier")
	assert.Equal(t, entity.StatusAcknowledged, user.Status)
	assert.False(t, user.Approved())
	assert.Equal(t, "29ABCDE1234F1Z5", user.Profile["gst_number"])
	assert.Contains(t, user.Profile, "documents")
	assert.Contains(t, user.Profile, "address")
	assert.NotContains(t, user.Profile, "email", "normalized fields must not duplicate into the profile")
}

func TestAttempt_StatusIsIgnoredForNonManufacturer(t *testing.T) {
	srv := serveJSON(t, http.StatusOK,
		`{"status":"success","user":{"id":"d-3","name":"West Zone","status":"APPROVED"}}`)
	c := backends.NewClient(entity.RoleDistributor, srv.URL, testTimeout, logger.Nop())

	user, err := c.Attempt(context.Background(), testCreds)
	require.NoError(t, err)
	assert.Empty(t, user.Status)
}

func TestAttempt_RejectionAndMalformedResponses(t *testing.T) {
	cases := []struct {
		name string
		code int
		body string
	}{
		{"status not success", http.StatusOK, `{"status":"error","message":"invalid credentials"}`},
		{"success without user", http.StatusOK, `{"status":"success"}`},
		{"not json", http.StatusOK, `<html>gateway timeout</html>`},
		{"user without id", http.StatusOK, `{"status":"success","user":{"name":"ghost"}}`},
		{"http 401", http.StatusUnauthorized, `{"status":"error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := serveJSON(t, tc.code, tc.body)
			c := backends.NewClient(entity.RoleRFC, srv.URL, testTimeout, logger.Nop())
			user, err := c.Attempt(context.Background(), testCreds)
			assert.Error(t, err)
			assert.Nil(t, user)
		})
	}
}

func TestAttempt_UnreachableBackend(t *testing.T) {
	c := backends.NewClient(entity.RoleRFC, "http://127.0.0.1:1", testTimeout, logger.Nop())
	user, err := c.Attempt(context.Background(), testCreds)
	assert.Error(t, err)
	assert.Nil(t, user)
}

// A hung backend must not stall the fallback chain past the per-attempt
// timeout.
func TestAttempt_TimeoutBoundsHungBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can detect the
		// client disconnect and cancel the request context; otherwise the
		// handler never unblocks and srv.Close deadlocks.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	c := backends.NewClient(entity.RoleRFC, srv.URL, 50*time.Millisecond, logger.Nop())

	start := time.Now()
	_, err := c.Attempt(context.Background(), testCreds)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLogout_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	c := backends.NewClient(entity.RoleManufacturer, srv.URL, testTimeout, logger.Nop())

	require.NoError(t, c.Logout(context.Background(), "tok-m"))
	assert.Equal(t, "Bearer tok-m", gotAuth)
}

func TestLogout_ServerErrorSurfaces(t *testing.T) {
	srv := serveJSON(t, http.StatusInternalServerError, `{}`)
	c := backends.NewClient(entity.RoleManufacturer, srv.URL, testTimeout, logger.Nop())
	assert.Error(t, c.Logout(context.Background(), "tok"))
}
