package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schulkompass/surveykit/internal/rbac"
)

func TestIssueAndParse(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	tok, err := svc.IssueJWT("teacher", rbac.RoleTeacher)
	require.NoError(t, err)

	claims, err := svc.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "teacher", claims.Subject)
	assert.Equal(t, rbac.RoleTeacher, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewAuthService("secret-a", time.Hour).IssueJWT("u", rbac.RoleAdmin)
	require.NoError(t, err)

	_, err = NewAuthService("secret-b", time.Hour).Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	tok, err := NewAuthService("secret", -time.Minute).IssueJWT("u", rbac.RoleTeacher)
	require.NoError(t, err)

	_, err = NewAuthService("secret", time.Hour).Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTMiddleware(t *testing.T) {
	svc := NewAuthService("secret", time.Hour)
	var gotSub, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
		w.WriteHeader(200)
	})
	h := svc.JWTMiddleware(next)

	// no token
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/scales", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// garbage token
	req := httptest.NewRequest("GET", "/scales", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid token
	tok, err := svc.IssueJWT("teacher", rbac.RoleTeacher)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/scales", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "teacher", gotSub)
	assert.Equal(t, rbac.RoleTeacher, gotRole)
}
