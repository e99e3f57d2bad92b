package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckerAllowed(t *testing.T) {
	c := NewChecker()

	assert.True(t, c.Allowed(RoleStudent, PermResponsesSubmit))
	assert.False(t, c.Allowed(RoleStudent, PermPackageCreate))
	assert.True(t, c.Allowed(RoleTeacher, PermPackageCreate))
	assert.False(t, c.Allowed(RoleTeacher, PermEventsView))
	assert.True(t, c.Allowed(RoleAdmin, PermEventsView))
	assert.False(t, c.Allowed("", PermScalesView))
	assert.False(t, c.Allowed("ghost", PermScalesView))
}

func TestRequireMiddleware(t *testing.T) {
	c := NewChecker()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	h := c.Require(PermPackageCreate)(ok)

	req := httptest.NewRequest("POST", "/scales/ANXMAT/package", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithRole(req.Context(), RoleTeacher)))
	assert.Equal(t, 200, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithRole(req.Context(), RoleStudent)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req) // no role at all
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAnyMiddleware(t *testing.T) {
	c := NewChecker()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	h := c.RequireAny(PermEventsView, PermResultsView)(ok)

	req := httptest.NewRequest("GET", "/results", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithRole(req.Context(), RoleTeacher)))
	assert.Equal(t, 200, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithRole(req.Context(), RoleStudent)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
