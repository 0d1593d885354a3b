package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/imclatam/imc-backend/internal/domain"
	"github.com/imclatam/imc-backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg, ok := validateCredentials(req.Email, req.Password); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tok, err := h.auth.Register(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, domain.ErrRegistrationFailed.Error())
		return
	}

	writeJSON(w, http.StatusCreated, domain.TokenResponse{AccessToken: tok})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg, ok := validateCredentials(req.Email, req.Password); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tok, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, domain.ErrLoginFailed.Error())
		return
	}

	writeJSON(w, http.StatusOK, domain.TokenResponse{AccessToken: tok})
}

// validateCredentials applies the boundary rules shared by register and
// login. The email check is deliberately loose: one @ not in first
// position, a dot somewhere after it. The email is never normalized;
// it is validated, stored and compared exactly as submitted.
func validateCredentials(email, password string) (string, bool) {
	if email == "" || password == "" {
		return "email y contraseña son obligatorios", false
	}
	at := strings.Index(email, "@")
	if at <= 0 || !strings.Contains(email[at:], ".") {
		return "formato de email inválido", false
	}
	if len(password) < 6 {
		return "la contraseña debe tener al menos 6 caracteres", false
	}
	return "", true
}
