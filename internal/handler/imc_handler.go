package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/imclatam/imc-backend/internal/domain"
	"github.com/imclatam/imc-backend/internal/middleware"
	"github.com/imclatam/imc-backend/internal/service"
)

type ImcHandler struct {
	imc *service.ImcService
}

func NewImcHandler(imc *service.ImcService) *ImcHandler {
	return &ImcHandler{imc: imc}
}

type calcularRequest struct {
	Peso   *float64 `json:"peso"`
	Altura *float64 `json:"altura"`
}

func (h *ImcHandler) Calcular(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	var req calcularRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A non-numeric peso/altura fails at decode; report it with the
		// same message the measurement validation uses.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && (typeErr.Field == "peso" || typeErr.Field == "altura") {
			writeError(w, http.StatusBadRequest, "la altura y el peso deben ser valores numéricos válidos")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.imc.Calcular(user, req.Peso, req.Altura)
	if err != nil {
		if domain.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, domain.ErrImcPersistence.Error())
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (h *ImcHandler) Historial(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	q := r.URL.Query()

	descendente := true
	if v := q.Get("esDescendente"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "esDescendente debe ser booleano")
			return
		}
		descendente = parsed
	}

	skip := 0
	if v := q.Get("skip"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "el valor mínimo de skip es 0")
			return
		}
		skip = parsed
	}

	var take *int
	if v := q.Get("take"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "el valor mínimo de take es 1")
			return
		}
		take = &parsed
	}

	views, err := h.imc.Historial(user, skip, take, descendente)
	if err != nil {
		writeError(w, http.StatusInternalServerError, domain.ErrHistorialFailed.Error())
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *ImcHandler) Estadisticas(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	stats, err := h.imc.Estadisticas(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, domain.ErrEstadisticasFailed.Error())
		return
	}
	if stats == nil {
		// No history yet: an empty object, not empty arrays.
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
