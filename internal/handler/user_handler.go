package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/imclatam/imc-backend/internal/domain"
	"github.com/imclatam/imc-backend/internal/middleware"
	"github.com/imclatam/imc-backend/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.AuthUserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	user, err := h.users.Profile(authUser)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, domain.ErrUserNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.FindAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email != nil {
		at := strings.Index(*req.Email, "@")
		if at <= 0 || !strings.Contains((*req.Email)[at:], ".") {
			writeError(w, http.StatusBadRequest, "formato de email inválido")
			return
		}
	}
	if req.Password != nil && len(*req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "la contraseña debe tener al menos 6 caracteres")
		return
	}

	user, err := h.users.Update(id, req)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
