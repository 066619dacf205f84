package handler

import (
	"net/http"

	"tradejournal/src/auth"
)

// MeHandler echoes the authenticated user's profile.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
	}
}
