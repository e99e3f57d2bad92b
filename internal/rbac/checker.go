package rbac

import (
	"context"
	"net/http"
)

type roleKey struct{}

// WithRole attaches a role to the context.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromContext returns the role set by the auth middleware, if any.
func RoleFromContext(ctx context.Context) string {
	r, _ := ctx.Value(roleKey{}).(string)
	return r
}

type Checker struct {
	perms map[string]map[string]struct{}
}

func NewChecker() *Checker {
	c := &Checker{perms: make(map[string]map[string]struct{}, len(RolePermissions))}
	for role, ps := range RolePermissions {
		set := make(map[string]struct{}, len(ps))
		for _, p := range ps {
			set[p] = struct{}{}
		}
		c.perms[role] = set
	}
	return c
}

func (c *Checker) Allowed(role, perm string) bool {
	set, ok := c.perms[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// Require rejects requests whose role lacks the permission.
func (c *Checker) Require(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !c.Allowed(RoleFromContext(r.Context()), perm) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny passes if the role holds at least one of the permissions.
func (c *Checker) RequireAny(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			for _, p := range perms {
				if c.Allowed(role, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}
