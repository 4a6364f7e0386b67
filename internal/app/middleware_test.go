package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bps3210/simkak/internal/config"
	"github.com/bps3210/simkak/pkg/user"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiddlewareTest() http.Handler {
	deps := &Dependencies{UserService: user.NewUserService([]config.User{
		{Username: "IPDS3210", Password: "BPS3210", Name: "Fungsi IPDS", Role: "IPDS"},
	})}
	r := mux.NewRouter()
	SetupMiddleware(r, deps)
	r.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		u, err := user.CurrentUser(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(u.Role))
	})
	return r
}

func TestSetupMiddleware(t *testing.T) {
	t.Run("should put known user into context", func(t *testing.T) {
		// given
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-User-Id", "IPDS3210")
		rr := httptest.NewRecorder()

		// when
		setupMiddlewareTest().ServeHTTP(rr, req)

		// then
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "IPDS", rr.Body.String())
	})

	t.Run("should reject unknown user", func(t *testing.T) {
		// given
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-User-Id", "GHOST")
		rr := httptest.NewRecorder()

		// when
		setupMiddlewareTest().ServeHTTP(rr, req)

		// then
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("should pass anonymous request through", func(t *testing.T) {
		// given
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		rr := httptest.NewRecorder()

		// when
		setupMiddlewareTest().ServeHTTP(rr, req)

		// then
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
