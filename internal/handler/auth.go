package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"relay-server/internal/domain"
	"relay-server/internal/service"

	"github.com/go-playground/validator/v10"
)

// AuthHandler serves the credential endpoints.
type AuthHandler struct {
	userService service.IUserService
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService service.IUserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		validate:    validator.New(),
		logger:      logger,
	}
}

type authResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// HandleLogin serves POST /login. Every failed login, malformed requests
// included, gets the same 401 body so the endpoint leaks nothing about which
// accounts exist.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnauthorized, authResponse{Success: false})
		return
	}

	if _, err := h.userService.Login(req.UserID, req.Password); err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			h.logger.Error("login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, authResponse{Success: false})
			return
		}
		writeJSON(w, http.StatusUnauthorized, authResponse{Success: false})
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Success: true})
}

// HandleRegister serves POST /register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, authResponse{Success: false, Error: "invalid request body"})
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, authResponse{Success: false, Error: "userId and password are required"})
		return
	}

	if _, err := h.userService.Register(req.UserID, req.Password); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			writeJSON(w, http.StatusBadRequest, authResponse{Success: false, Error: err.Error()})
			return
		}
		h.logger.Error("registration failed", "user_id", req.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, authResponse{Success: false, Error: "registration failed"})
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Success: true})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
