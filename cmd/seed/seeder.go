// Package main provides the seed command for populating the database with
// initial or test data. It supports multiple seeders that can be run
// individually or together within a single transaction.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/JaimeStill/sales-lab/pkg/database"
)

// Seeder defines the interface for database seeders.
// Each seeder is responsible for populating a specific table's data.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Order positions the seeder when all seeders run together. Lower runs first.
	Order() int

	// Seed executes the seeding logic within the provided transaction.
	Seed(ctx context.Context, tx *sql.Tx, dialect database.Dialect) error
}

type fileSeeder interface {
	SetFile(path string)
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the global registry.
// Seeders self-register via init() functions.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

// getSeeder retrieves a seeder by name from the registry.
func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders in run order.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int { return a.Order() - b.Order() })
	return result
}

// runSeeder executes a single seeder by name within a transaction.
func runSeeder(ctx context.Context, db *sql.DB, dialect database.Dialect, name string) error {
	seeder, ok := getSeeder(name)
	if !ok {
		return fmt.Errorf("seeder not found: %s", name)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := seeder.Seed(ctx, tx, dialect); err != nil {
		tx.Rollback()
		return fmt.Errorf("seed %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// runAllSeeders executes all registered seeders in order within a single transaction.
// If any seeder fails, the entire transaction is rolled back.
func runAllSeeders(ctx context.Context, db *sql.DB, dialect database.Dialect) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, seeder := range listSeeders() {
		if err := seeder.Seed(ctx, tx, dialect); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", seeder.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// loadSeedFile decodes path when set, otherwise the embedded default.
func loadSeedFile(path string, embedded []byte, v any) error {
	data := embedded
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}
	return nil
}

// upsert builds an insert that overwrites non-key columns when the key already exists.
func upsert(dialect database.Dialect, table, key string, columns []string) string {
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), dialect.Placeholders(1, len(columns)),
	)

	sets := make([]string, 0, len(columns)-1)
	for _, c := range columns {
		if c == key {
			continue
		}
		if dialect == database.Postgres {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		} else {
			sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", c, c))
		}
	}

	if dialect == database.Postgres {
		return q + fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", key, strings.Join(sets, ", "))
	}
	return q + " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
}

// syncIdentity advances a Postgres identity sequence past explicitly seeded keys.
func syncIdentity(ctx context.Context, tx *sql.Tx, dialect database.Dialect, table, key string) error {
	if dialect != database.Postgres {
		return nil
	}
	q := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE((SELECT MAX(%s) FROM %s), 1))",
		table, key, key, table,
	)
	_, err := tx.ExecContext(ctx, q)
	return err
}
