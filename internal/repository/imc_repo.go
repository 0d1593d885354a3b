package repository

import (
	"database/sql"
	"fmt"

	"github.com/imclatam/imc-backend/internal/domain"
)

// ImcRepository is the persistence contract for BMI records.
type ImcRepository interface {
	Create(record *domain.ImcRecord) error
	FindByUser(userID int64, descending bool, skip int, take *int) ([]domain.ImcRecord, error)
}

type MySQLImcRepository struct {
	db *sql.DB
}

func NewMySQLImcRepository(db *sql.DB) *MySQLImcRepository {
	return &MySQLImcRepository{db: db}
}

func (r *MySQLImcRepository) Create(record *domain.ImcRecord) error {
	result, err := r.db.Exec(
		`INSERT INTO imc (peso, altura, imc, categoria, fecha, user_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.Peso, record.Altura, record.Imc, record.Categoria, record.Fecha, record.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create imc record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new imc id: %w", err)
	}
	record.ID = id
	return nil
}

// MySQL has no OFFSET without LIMIT; an unbounded page uses the maximum
// row count the protocol allows.
const unboundedLimit = "18446744073709551615"

// FindByUser returns the user's records ordered by fecha (id as tiebreak so
// pagination stays deterministic), skipping skip rows and returning at most
// take rows. A nil take means all remaining rows.
func (r *MySQLImcRepository) FindByUser(userID int64, descending bool, skip int, take *int) ([]domain.ImcRecord, error) {
	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	query := `SELECT id, peso, altura, imc, categoria, fecha, user_id
		 FROM imc WHERE user_id = ?
		 ORDER BY fecha ` + direction + `, id ` + direction
	args := []interface{}{userID}

	switch {
	case take != nil:
		query += ` LIMIT ? OFFSET ?`
		args = append(args, *take, skip)
	case skip > 0:
		query += ` LIMIT ` + unboundedLimit + ` OFFSET ?`
		args = append(args, skip)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list imc records: %w", err)
	}
	defer rows.Close()

	var records []domain.ImcRecord
	for rows.Next() {
		var rec domain.ImcRecord
		if err := rows.Scan(&rec.ID, &rec.Peso, &rec.Altura, &rec.Imc, &rec.Categoria, &rec.Fecha, &rec.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan imc record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
