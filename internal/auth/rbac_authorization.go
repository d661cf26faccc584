package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RBACAuthorization gates routes on a named permission label. The check is a
// single attribute comparison per request: the Admin role bypasses it,
// otherwise the principal needs a direct grant with the exact label.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

func (ra *RBACAuthorization) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				writeJSONMessage(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}

			if !user.CanPerform(permission) {
				ra.logger.Warn("access denied: insufficient permissions",
					"user_id", user.ID,
					"role", user.RoleName,
					"required_permission", permission,
					"user_permissions", user.Permissions)
				writeJSONMessage(w, http.StatusForbidden, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
