package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindcheck/internal/rbac"
)

func TestIssueAndParse(t *testing.T) {
	a := NewAuthService("k1")
	tok, err := a.IssueJWT("42", RoleUser, "a@example.com", "Ana")
	require.NoError(t, err)

	c, err := a.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", c.Sub)
	assert.Equal(t, RoleUser, c.Role)
	assert.Equal(t, "a@example.com", c.Email)

	_, err = NewAuthService("other").Parse(tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	a := NewAuthService("k1")
	tok, err := a.IssueJWT("1", RoleUser, "", "")
	require.NoError(t, err)

	a.now = func() time.Time { return time.Now().Add(9 * time.Hour) }
	_, err = a.Parse(tok)
	assert.Error(t, err)
}

func probe(t *testing.T) (http.Handler, *string, *string) {
	t.Helper()
	var sub, role string
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub = SubjectFromContext(r.Context())
		role = rbac.RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}), &sub, &role
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("k1")
	tok, err := a.IssueJWT("admin:root", RoleAdmin, "", "root")
	require.NoError(t, err)
	next, sub, role := probe(t)
	h := JWTMiddleware(a)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin:root", *sub)
	assert.Equal(t, RoleAdmin, *role)
}

func TestOptionalJWT(t *testing.T) {
	a := NewAuthService("k1")
	next, sub, _ := probe(t)
	h := OptionalJWT(a)(next)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, *sub)

	tok, err := a.IssueJWT("9", RoleUser, "", "")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "9", *sub)
}

func TestUserIDFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)

	id, ok := UserIDFromContext(WithSubject(req.Context(), "17"))
	assert.True(t, ok)
	assert.Equal(t, int64(17), id)

	_, ok = UserIDFromContext(WithSubject(req.Context(), "admin:root"))
	assert.False(t, ok)
}
