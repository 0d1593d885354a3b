package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/imclatam/imc-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the persistence contract for users. Services depend on
// this interface; MySQLUserRepository is the concrete adapter.
type UserRepository interface {
	Create(email, rawPassword string) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	FindByID(id int64) (*domain.User, error)
	FindAll() ([]domain.User, error)
	Update(id int64, req domain.UpdateUserRequest) (*domain.User, error)
}

const mysqlDuplicateEntry = 1062

// IsDuplicateEntry reports whether err is the store's unique-constraint
// rejection. A concurrent duplicate registration resolves here.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create hashes the raw password and inserts the user. The password is
// mandatory; hashing never happens on an empty credential.
func (r *MySQLUserRepository) Create(email, rawPassword string) (*domain.User, error) {
	if rawPassword == "" {
		return nil, domain.ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := r.db.Exec(
		`INSERT INTO users (email, password) VALUES (?, ?)`,
		email, string(hash),
	)
	if err != nil {
		if IsDuplicateEntry(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new user id: %w", err)
	}

	return &domain.User{ID: id, Email: email, Password: string(hash)}, nil
}

func (r *MySQLUserRepository) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(
		`SELECT id, email, password FROM users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Email, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

func (r *MySQLUserRepository) FindByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(
		`SELECT id, email, password FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Email, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *MySQLUserRepository) FindAll() ([]domain.User, error) {
	rows, err := r.db.Query(`SELECT id, email, password FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Password); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update changes only the supplied fields. A supplied password is re-hashed
// before save.
func (r *MySQLUserRepository) Update(id int64, req domain.UpdateUserRequest) (*domain.User, error) {
	existing, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrUserNotFound
	}

	var setClauses []string
	var args []interface{}

	if req.Email != nil {
		setClauses = append(setClauses, "email = ?")
		args = append(args, *req.Email)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		setClauses = append(setClauses, "password = ?")
		args = append(args, string(hash))
	}

	if len(setClauses) == 0 {
		return existing, nil
	}

	args = append(args, id)
	query := "UPDATE users SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"

	if _, err := r.db.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return r.FindByID(id)
}
