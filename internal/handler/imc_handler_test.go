package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/imclatam/imc-backend/internal/domain"
	"github.com/imclatam/imc-backend/internal/middleware"
	"github.com/imclatam/imc-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImcHandlerWithUser(t *testing.T) (*ImcHandler, *fakeImcRepo, domain.AuthUser) {
	t.Helper()
	users := newFakeUserRepo()
	u, err := users.Create("ana@test.com", "secreta1")
	require.NoError(t, err)

	records := &fakeImcRepo{}
	h := NewImcHandler(service.NewImcService(records, users))
	return h, records, domain.AuthUser{ID: u.ID, Email: u.Email}
}

func authedRequest(method, target, body string, user domain.AuthUser) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middleware.WithAuthUser(req.Context(), user))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestCalcularCreatesRecord(t *testing.T) {
	h, records, user := newImcHandlerWithUser(t)

	rec := httptest.NewRecorder()
	h.Calcular(rec, authedRequest(http.MethodPost, "/imc/calcular", `{"peso":70,"altura":1.75}`, user))

	require.Equal(t, http.StatusCreated, rec.Code)

	var view domain.ImcView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 22.86, view.Imc)
	assert.Equal(t, domain.CategoriaNormal, view.Categoria)
	assert.Len(t, records.records, 1)
}

func TestCalcularNonNumericValues(t *testing.T) {
	h, _, user := newImcHandlerWithUser(t)

	rec := httptest.NewRecorder()
	h.Calcular(rec, authedRequest(http.MethodPost, "/imc/calcular", `{"peso":"setenta","altura":1.75}`, user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "la altura y el peso deben ser valores numéricos válidos", errorMessage(t, rec))
}

func TestCalcularMissingValues(t *testing.T) {
	h, _, user := newImcHandlerWithUser(t)

	rec := httptest.NewRecorder()
	h.Calcular(rec, authedRequest(http.MethodPost, "/imc/calcular", `{"altura":1.75}`, user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "la altura y el peso no pueden estar vacíos", errorMessage(t, rec))
}

func TestCalcularValidationMessagePassthrough(t *testing.T) {
	h, _, user := newImcHandlerWithUser(t)

	rec := httptest.NewRecorder()
	h.Calcular(rec, authedRequest(http.MethodPost, "/imc/calcular", `{"peso":100,"altura":2.111}`, user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "la altura no puede tener más de 2 decimales", errorMessage(t, rec))
}

func TestHistorialQueryValidation(t *testing.T) {
	h, _, user := newImcHandlerWithUser(t)

	cases := []struct {
		query   string
		wantMsg string
	}{
		{"skip=-1", "el valor mínimo de skip es 0"},
		{"take=0", "el valor mínimo de take es 1"},
		{"esDescendente=banana", "esDescendente debe ser booleano"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.Historial(rec, authedRequest(http.MethodGet, "/imc/historial?"+tc.query, "", user))
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.query)
		assert.Equal(t, tc.wantMsg, errorMessage(t, rec), tc.query)
	}
}

func TestHistorialReturnsPage(t *testing.T) {
	h, records, user := newImcHandlerWithUser(t)

	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		records.Create(&domain.ImcRecord{
			Peso: 70 + float64(i), Altura: 1.75, Imc: 22, Categoria: domain.CategoriaNormal,
			Fecha: base.AddDate(0, 0, i), UserID: user.ID,
		})
	}

	rec := httptest.NewRecorder()
	h.Historial(rec, authedRequest(http.MethodGet, "/imc/historial?skip=0&take=2", "", user))

	require.Equal(t, http.StatusOK, rec.Code)
	var views []domain.ImcView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, 72.0, views[0].Peso)
}

func TestEstadisticasEmptyObject(t *testing.T) {
	h, _, user := newImcHandlerWithUser(t)

	rec := httptest.NewRecorder()
	h.Estadisticas(rec, authedRequest(http.MethodGet, "/imc/estadisticas", "", user))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestEstadisticasShape(t *testing.T) {
	h, records, user := newImcHandlerWithUser(t)

	records.Create(&domain.ImcRecord{
		Peso: 70, Altura: 1.75, Imc: 22.86, Categoria: domain.CategoriaNormal,
		Fecha: time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC), UserID: user.ID,
	})

	rec := httptest.NewRecorder()
	h.Estadisticas(rec, authedRequest(http.MethodGet, "/imc/estadisticas", "", user))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"imcMensual":[{"mes":"ene","imc":22.86}],"variacionPeso":[{"mes":"ene","peso":70}]}`, rec.Body.String())
}
