package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bps3210/simkak/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var directory = []config.User{
	{Username: "PPK3210", Password: "bellamy", Name: "Andries Kurniawan", Role: "PPK"},
	{Username: "TU3210", Password: "BPS3210", Name: "Tata Usaha", Role: "TU"},
}

func TestServiceImpl_Login(t *testing.T) {
	service := NewUserService(directory)

	t.Run("should return user for valid credentials", func(t *testing.T) {
		// when
		u, err := service.Login(context.Background(), "PPK3210", "bellamy")

		// then
		require.NoError(t, err)
		assert.Equal(t, User{Username: "PPK3210", Name: "Andries Kurniawan", Role: "PPK"}, u)
	})

	t.Run("should reject wrong password", func(t *testing.T) {
		// when
		_, err := service.Login(context.Background(), "PPK3210", "BPS3210")

		// then
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("should reject unknown username", func(t *testing.T) {
		// when
		_, err := service.Login(context.Background(), "NOBODY", "bellamy")

		// then
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestServiceImpl_GetCurrentUser(t *testing.T) {
	service := NewUserService(directory)

	t.Run("should read user from context", func(t *testing.T) {
		// given
		ctx := WithUser(context.Background(), User{Username: "TU3210", Name: "Tata Usaha", Role: "TU"})

		// when
		u, err := service.GetCurrentUser(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, "TU3210", u.Username)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		// when
		_, err := service.GetCurrentUser(context.Background())

		// then
		assert.ErrorIs(t, err, ErrNoUser)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestHandler_Login(t *testing.T) {
	handler := NewHandler(NewUserService(directory))

	t.Run("should respond with user on success", func(t *testing.T) {
		// given
		body, _ := json.Marshal(LoginRequestDTO{Username: "TU3210", Password: "BPS3210"})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// when
		handler.Login(rr, req)

		// then
		require.Equal(t, http.StatusOK, rr.Code)
		var dto UserDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&dto))
		assert.Equal(t, "Tata Usaha", dto.Name)
	})

	t.Run("should respond 401 with indonesian message", func(t *testing.T) {
		// given
		body, _ := json.Marshal(LoginRequestDTO{Username: "TU3210", Password: "wrong"})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// when
		handler.Login(rr, req)

		// then
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Username atau password salah")
	})
}
