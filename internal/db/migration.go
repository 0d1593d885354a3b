package db

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "db").Logger()

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "000_create_users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id       BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				email    VARCHAR(255) NOT NULL UNIQUE,
				password VARCHAR(255) NOT NULL
			)`,
	},
	{
		version: "001_create_imc",
		sql: `
			CREATE TABLE IF NOT EXISTS imc (
				id        BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				peso      DOUBLE NOT NULL,
				altura    DOUBLE NOT NULL,
				imc       DOUBLE NOT NULL,
				categoria VARCHAR(20) NOT NULL,
				fecha     DATETIME NOT NULL,
				user_id   BIGINT UNSIGNED NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "002_index_imc_user_fecha",
		sql:     `CREATE INDEX idx_imc_user_fecha ON imc (user_id, fecha)`,
	},
}

func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := executeMigration(db, m); err != nil {
			return err
		}

		logger.Info().Str("version", m.version).Msg("applied migration")
	}

	return nil
}

func isMigrationApplied(db *sql.DB, version string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`,
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}

func executeMigration(db *sql.DB, m migration) error {
	if _, err := db.Exec(m.sql); err != nil {
		return fmt.Errorf("failed to apply migration %s: %w", m.version, err)
	}
	if _, err := db.Exec(
		`INSERT INTO schema_migrations (version) VALUES (?)`,
		m.version,
	); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", m.version, err)
	}
	return nil
}
