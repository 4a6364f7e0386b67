package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bps3210/simkak/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

// Login godoc
// @Summary Log in with a directory account
// @Description Checks credentials and returns the user; the client sends the username as X-User-Id afterwards
// @Tags User
// @Accept json
// @Produce json
// @Param credentials body LoginRequestDTO true "Credentials"
// @Success 200 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 401 {object} rest.ErrorResponse "Invalid credentials"
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log.Debug("Logging in")

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Format permintaan tidak valid", nil)
		return
	}

	u, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			rest.WriteError(w, http.StatusUnauthorized, "Login gagal", err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	rest.WriteJSON(w, http.StatusOK, userToDTO(u))
}

// CurrentUser godoc
// @Summary Get the current user
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 403 {string} string "User not found"
// @Router /api/user/current [get]
// @Security XUserId
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting current user")
	u, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusForbidden, err.Error(), nil)
		return
	}
	rest.WriteJSON(w, http.StatusOK, userToDTO(u))
}

func userToDTO(u User) UserDTO {
	return UserDTO{Username: u.Username, Name: u.Name, Role: u.Role}
}
