package auth

import (
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"tradejournal/src/model"
)

// Middleware resolves the bearer token to the journal owner and stashes the
// user in the request context. Account management lives outside this
// service; the middleware only guards the boundary.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	owner := &model.User{ID: cfg.OwnerUserID, Email: cfg.OwnerEmail}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.APITokenHash != "" {
				token := bearerToken(r)
				if token == "" {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				if err := bcrypt.CompareHashAndPassword([]byte(cfg.APITokenHash), []byte(token)); err != nil {
					logger.Warn("rejected request with invalid API token")
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
			}

			ctx := r.Context()
			next.ServeHTTP(w, r.WithContext(withUser(ctx, owner)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
