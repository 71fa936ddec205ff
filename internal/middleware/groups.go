package middleware

import (
	"encoding/json"
	"net/http"
	"slices"

	"docporter/internal/httputil"
)

// allowedGroupsHeader carries the caller's group memberships as a JSON array
// of objects with a name field, set by the authorization proxy in front of
// this service.
const allowedGroupsHeader = "mu-auth-allowed-groups"

// RequireGroup rejects requests whose allowed-groups header does not name at
// least one of the configured groups.
func RequireGroup(allowedGroups []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(allowedGroupsHeader)
			if header == "" {
				httputil.RespondError(w, http.StatusUnauthorized,
					"You don't have the correct access rights to access this endpoint")
				return
			}

			var groups []struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal([]byte(header), &groups); err != nil {
				httputil.RespondError(w, http.StatusUnauthorized,
					"You don't have the correct access rights to access this endpoint")
				return
			}

			for _, group := range groups {
				if slices.Contains(allowedGroups, group.Name) {
					next.ServeHTTP(w, r)
					return
				}
			}

			httputil.RespondError(w, http.StatusUnauthorized,
				"You don't have the correct access rights to access this endpoint")
		})
	}
}
