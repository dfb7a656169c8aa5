package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecker(t *testing.T) {
	c := NewChecker(map[string][]string{
		"user":  {"entry:view-own"},
		"staff": {"entry:*"},
		"admin": {"*"},
	})
	assert.True(t, c.Has("user", "entry:view-own"))
	assert.False(t, c.Has("user", "entry:view-all"))
	assert.True(t, c.Has("staff", "entry:view-all"))
	assert.False(t, c.Has("staff", "stats:view"))
	assert.True(t, c.Has("admin", "stats:view"))
	assert.False(t, c.Has("ghost", "entry:view-own"))
}

func TestDefaultPolicy(t *testing.T) {
	c := NewChecker(nil)
	assert.True(t, c.Has("user", "entry:view-own"))
	assert.False(t, c.Has("user", "submissions:list"))
	assert.False(t, c.Has("user", "stats:view"))
	assert.True(t, c.Has("admin", "submissions:list"))
	assert.True(t, c.Has("admin", "stats:view"))

	// admins carry no account id, so they cannot own entries
	assert.False(t, c.Has("admin", "entry:view-own"))
}

// every permission a route checks must be granted to some role
func TestDefaultPolicyCoversRoutePermissions(t *testing.T) {
	c := NewChecker(nil)
	for _, perm := range []string{"entry:view-own", "stats:view", "submissions:list"} {
		granted := false
		for role := range RolePermissions {
			granted = granted || c.Has(role, perm)
		}
		assert.Truef(t, granted, "no role grants %s", perm)
	}
}

func TestRequire(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	cases := []struct {
		name string
		role string
		mw   func(http.Handler) http.Handler
		want int
	}{
		{"anonymous", "", Require("stats:view"), http.StatusForbidden},
		{"user denied", "user", Require("stats:view"), http.StatusForbidden},
		{"admin allowed", "admin", Require("stats:view"), http.StatusNoContent},
		{"user own entries", "user", Require("entry:view-own"), http.StatusNoContent},
		{"admin no entries", "admin", Require("entry:view-own"), http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.role != "" {
				req = req.WithContext(WithRole(context.Background(), tc.role))
			}
			rec := httptest.NewRecorder()
			tc.mw(ok).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
