package auth

import (
	"net/http"

	internal "github.com/teampulse/teampulse/internal"
	"github.com/teampulse/teampulse/internal/rbac"
)

// RequireLevels gates a route group on an allow-list of role levels. A
// session whose level is absent or outside the list gets 403; a request that
// never passed the auth middleware gets 401.
func (h *Handler) RequireLevels(allowed ...rbac.Level) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := internal.SessionFromContext(r.Context())
			switch rbac.CheckLevels(session, allowed...) {
			case rbac.DecisionAuthorized:
				next.ServeHTTP(w, r)
			case rbac.DecisionUnauthenticated:
				h.WriteError(w, http.StatusUnauthorized, "authentication required")
			default:
				h.WriteError(w, http.StatusForbidden, "insufficient role level")
			}
		})
	}
}

// RequirePermission gates a route group on exact membership of one
// permission name in the session's resolved set.
func (h *Handler) RequirePermission(required rbac.PermissionName) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := internal.SessionFromContext(r.Context())
			switch rbac.CheckPermission(session, required) {
			case rbac.DecisionAuthorized:
				next.ServeHTTP(w, r)
			case rbac.DecisionUnauthenticated:
				h.WriteError(w, http.StatusUnauthorized, "authentication required")
			default:
				h.WriteError(w, http.StatusForbidden, "permission denied")
			}
		})
	}
}
