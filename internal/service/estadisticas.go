package service

import (
	"time"

	"github.com/imclatam/imc-backend/internal/domain"
)

// Month labels follow the es-AR short form; September abbreviates to four
// letters. The slice order is also the sort order of the output.
var mesesCortos = [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

var zonaBuenosAires = func() *time.Location {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		// Argentina has no DST; a fixed offset is equivalent.
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}()

// Estadisticas aggregates the user's complete history into monthly mean BMI
// and mean weight, bucketed by the record's month in Buenos Aires time.
// Records from the same calendar month of different years share a bucket.
// A user with no history gets nil, which the handler serializes as {}.
func (s *ImcService) Estadisticas(user domain.AuthUser) (*domain.Estadisticas, error) {
	logger.Debug().Str("email", user.Email).Msg("calculando estadísticas de IMC")

	records, err := s.records.FindByUser(user.ID, true, 0, nil)
	if err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("failed to fetch records for statistics")
		return nil, domain.ErrEstadisticasFailed
	}
	if len(records) == 0 {
		return nil, nil
	}

	type bucket struct {
		count   int
		sumImc  float64
		sumPeso float64
	}
	var buckets [12]*bucket

	for _, r := range records {
		m := int(r.Fecha.In(zonaBuenosAires).Month()) - 1
		if buckets[m] == nil {
			buckets[m] = &bucket{}
		}
		buckets[m].count++
		buckets[m].sumImc += r.Imc
		buckets[m].sumPeso += r.Peso
	}

	stats := &domain.Estadisticas{}
	for m, b := range buckets {
		if b == nil {
			continue
		}
		n := float64(b.count)
		stats.ImcMensual = append(stats.ImcMensual, domain.MesImc{
			Mes: mesesCortos[m],
			Imc: round2(b.sumImc / n),
		})
		stats.VariacionPeso = append(stats.VariacionPeso, domain.MesPeso{
			Mes:  mesesCortos[m],
			Peso: round2(b.sumPeso / n),
		})
	}
	return stats, nil
}
