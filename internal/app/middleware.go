package app

import (
	"errors"
	"net/http"

	"github.com/bps3210/simkak/internal/rest"
	"github.com/bps3210/simkak/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	// Propagate X-User-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			username := req.Header.Get("X-User-Id")
			ctx := req.Context()

			if username != "" {
				u, err := deps.UserService.GetUserByUsername(ctx, username)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("user not found: %s", username)
						rest.WriteError(w, http.StatusForbidden, "Pengguna tidak dikenal", nil)
						return
					}
					log.Errorf("failed to get user: %v", err)
					rest.WriteError(w, http.StatusBadRequest, "Terjadi kesalahan", err.Error())
					return
				}
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
