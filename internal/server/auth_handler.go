package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/types"
)

// AuthHandler serves registration, login and the account settings endpoints.
type AuthHandler struct {
	server      *Server
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(s *Server, userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		server:      s,
		userService: userService,
		jwtService:  jwtService,
		validator:   validator.New(),
	}
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		h.server.writeServiceError(w, r, err)
		return
	}
	h.issue(w, r, http.StatusCreated, user)
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.server.writeServiceError(w, r, err)
		return
	}
	h.issue(w, r, http.StatusOK, user)
}

func (h *AuthHandler) issue(w http.ResponseWriter, r *http.Request, status int, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		h.server.writeServiceError(w, r, err)
		return
	}
	h.server.writeData(w, status, types.LoginResponse{User: user, Token: token})
}

// ChangePassword handles POST /v1/users/me/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		h.server.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req types.ChangePasswordRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	if err := h.userService.ChangePassword(r.Context(), userID, &req); err != nil {
		h.server.writeServiceError(w, r, err)
		return
	}
	h.server.writeMessage(w, "Password updated successfully")
}

// GetProfile handles GET /v1/users/me/profile.
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		h.server.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	p, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		h.server.writeServiceError(w, r, err)
		return
	}
	h.server.writeData(w, http.StatusOK, p)
}

// UpdateProfile handles PATCH /v1/users/me/profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		h.server.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req types.UpdateProfileRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	p, err := h.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.server.writeServiceError(w, r, err)
		return
	}
	h.server.writeData(w, http.StatusOK, p)
}

// decodeValid decodes and validates the body, writing a 400 on failure.
func (h *AuthHandler) decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(w, r, v); err != nil {
		h.server.writeServiceError(w, r, err)
		return false
	}
	if err := h.validator.Struct(v); err != nil {
		h.server.writeServiceError(w, r, validationError(err))
		return false
	}
	return true
}
