package rbac

import (
	"net/http"

	authmw "github.com/openlearn/classroom/internal/auth/middleware"
)

var defaultChecker = NewChecker(nil)

// Require enforces a single permission against the actor's role.
func Require(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := authmw.ActorFromContext(r.Context())
			if !ok || !defaultChecker.Has(actor.Role, perm) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny enforces that the role has at least one of the permissions.
func RequireAny(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := authmw.ActorFromContext(r.Context())
			if !ok || !defaultChecker.Any(actor.Role, perms...) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
