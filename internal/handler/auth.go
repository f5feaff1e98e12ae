package handler

import (
	"errors"
	"net/http"

	"github.com/msomdec/tareas/internal/domain"
	"github.com/msomdec/tareas/internal/service"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister creates a user account.
// POST /register
// Request:  {"email":"...","password":"..."}
// Response: 201 {"message":"user registered"}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r, &req); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, "email and password are required")
			return
		}
		writeInternalError(w, r, "decode register request", err)
		return
	}

	if _, err := h.auth.Register(r.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeMessage(w, http.StatusBadRequest, "email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusBadRequest, "email and password are required")
		default:
			writeInternalError(w, r, "register user", err)
		}
		return
	}

	writeMessage(w, http.StatusCreated, "user registered")
}

// HandleLogin exchanges credentials for a bearer token.
// POST /login
// Request:  {"email":"...","password":"..."}
// Response: 200 {"message":"login successful","token":"..."}
//
// The body is not validated up front: missing fields simply fail the
// credential check with 401.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeInternalError(w, r, "login user", err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "login successful",
		Token:   token,
	})
}
