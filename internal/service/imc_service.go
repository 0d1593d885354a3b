package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/imclatam/imc-backend/internal/domain"
	"github.com/imclatam/imc-backend/internal/repository"
)

const (
	pesoMax   = 500.0
	alturaMax = 3.0
)

// ImcService validates measurements, computes BMI records for the
// authenticated user and serves history and statistics over them.
type ImcService struct {
	records repository.ImcRepository
	users   repository.UserRepository
	now     func() time.Time
}

func NewImcService(records repository.ImcRepository, users repository.UserRepository) *ImcService {
	return &ImcService{records: records, users: users, now: time.Now}
}

// Calcular runs the ordered measurement validation, computes and rounds the
// BMI, classifies it and persists a record owned by the authenticated user.
// Validation failures carry their specific message; everything else
// surfaces as the opaque persistence error.
func (s *ImcService) Calcular(user domain.AuthUser, peso, altura *float64) (*domain.ImcView, error) {
	logger.Debug().Str("email", user.Email).Msg("calculando IMC")

	if err := validateMeasurement(peso, altura); err != nil {
		return nil, err
	}
	p, a := *peso, *altura

	imc := p / (a * a)
	imcRedondeado := round2(imc)
	categoria := categorize(imc)

	// The token identity may be stale; persist against the canonical record.
	owner, err := s.users.FindByID(user.ID)
	if err != nil || owner == nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to resolve owner for imc record")
		return nil, domain.ErrImcPersistence
	}

	record := &domain.ImcRecord{
		Peso:      p,
		Altura:    a,
		Imc:       imcRedondeado,
		Categoria: categoria,
		Fecha:     s.now(),
		UserID:    owner.ID,
	}

	if err := s.records.Create(record); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("failed to create imc record")
		return nil, domain.ErrImcPersistence
	}

	return &domain.ImcView{
		Peso:      record.Peso,
		Altura:    record.Altura,
		Imc:       record.Imc,
		Categoria: record.Categoria,
		Fecha:     record.Fecha,
	}, nil
}

// Historial returns the user's records ordered by fecha, paginated. A nil
// take returns everything after skip.
func (s *ImcService) Historial(user domain.AuthUser, skip int, take *int, descendente bool) ([]domain.ImcView, error) {
	logger.Debug().Str("email", user.Email).Int("skip", skip).Bool("descendente", descendente).Msg("obteniendo historial de IMC")

	records, err := s.records.FindByUser(user.ID, descendente, skip, take)
	if err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("failed to fetch imc history")
		return nil, domain.ErrHistorialFailed
	}

	views := make([]domain.ImcView, 0, len(records))
	for _, r := range records {
		views = append(views, domain.ImcView{
			Peso:      r.Peso,
			Altura:    r.Altura,
			Imc:       r.Imc,
			Categoria: r.Categoria,
			Fecha:     r.Fecha,
		})
	}
	return views, nil
}

// validateMeasurement applies the measurement rules in their fixed order;
// the first failing check determines the reported message.
func validateMeasurement(peso, altura *float64) error {
	if peso == nil || altura == nil {
		return domain.NewValidationError("la altura y el peso no pueden estar vacíos")
	}
	p, a := *peso, *altura

	if math.IsNaN(p) || math.IsInf(p, 0) || math.IsNaN(a) || math.IsInf(a, 0) {
		return domain.NewValidationError("la altura y el peso deben ser valores numéricos válidos")
	}

	if p < 0 {
		return domain.NewValidationError("el peso no puede ser negativo")
	}
	if a < 0 {
		return domain.NewValidationError("la altura no puede ser negativa")
	}

	// Open ranges: zero and the upper bound itself are both invalid.
	if p == 0 || p >= pesoMax {
		return domain.NewValidationError("el peso debe ser mayor a 0 y menor a 500 kg")
	}
	if a == 0 || a >= alturaMax {
		return domain.NewValidationError("la altura debe ser mayor a 0 y menor a 3 metros")
	}

	if decimalDigits(a) > 2 {
		return domain.NewValidationError("la altura no puede tener más de 2 decimales")
	}
	if decimalDigits(p) > 2 {
		return domain.NewValidationError("el peso no puede tener más de 2 decimales")
	}

	return nil
}

// decimalDigits counts digits after the decimal separator in the shortest
// decimal representation of v. The rule is about the written form, not a
// numeric tolerance.
func decimalDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// round2 rounds to two decimals, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// categorize classifies the unrounded BMI value.
func categorize(imc float64) string {
	switch {
	case imc < 18.5:
		return domain.CategoriaBajoPeso
	case imc < 25:
		return domain.CategoriaNormal
	case imc < 30:
		return domain.CategoriaSobrepeso
	default:
		return domain.CategoriaObeso
	}
}
