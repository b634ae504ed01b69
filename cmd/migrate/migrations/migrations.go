// Package migrations embeds the versioned schema for each supported SQL dialect
// and applies it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/JaimeStill/sales-lab/pkg/database"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed mysql/*.sql postgres/*.sql
var files embed.FS

// Dir returns the embedded migration directory for dialect.
func Dir(dialect database.Dialect) string {
	if dialect == database.Postgres {
		return "postgres"
	}
	return "mysql"
}

// New builds a migrator over an open connection. Each migration file holds a
// single statement so neither driver needs multi-statement support.
func New(db *sql.DB, dialect database.Dialect) (*migrate.Migrate, error) {
	src, err := iofs.New(files, Dir(dialect))
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	var m *migrate.Migrate
	switch dialect {
	case database.Postgres:
		drv, derr := migratepgx.WithInstance(db, &migratepgx.Config{})
		if derr != nil {
			return nil, fmt.Errorf("postgres migration driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", src, "pgx5", drv)
	default:
		drv, derr := migratemysql.WithInstance(db, &migratemysql.Config{})
		if derr != nil {
			return nil, fmt.Errorf("mysql migration driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", src, "mysql", drv)
	}

	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
