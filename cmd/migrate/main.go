// Command migrate applies the embedded schema migrations to the configured database.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/JaimeStill/sales-lab/cmd/migrate/migrations"
	"github.com/JaimeStill/sales-lab/internal/config"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var (
		up      = flag.Bool("up", false, "Apply all pending migrations")
		down    = flag.Bool("down", false, "Roll back all migrations")
		steps   = flag.Int("steps", 0, "Apply (positive) or roll back (negative) n migrations")
		force   = flag.Int("force", -1, "Force the schema version without running migrations")
		version = flag.Bool("version", false, "Print the current schema version")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		log.Fatalf("finalize config: %v", err)
	}

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.Dsn())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	m, err := migrations.New(db, cfg.Database.Dialect())
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case *up:
		err = m.Up()
	case *down:
		err = m.Down()
	case *steps != 0:
		err = m.Steps(*steps)
	case *force >= 0:
		err = m.Force(*force)
	case *version:
		printVersion(m)
		return
	default:
		fmt.Println("usage: migrate [-up|-down|-steps n|-force v|-version]")
		flag.PrintDefaults()
		return
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("no change")
		return
	}
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	printVersion(m)
}

func printVersion(m *migrate.Migrate) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("version: none")
		return
	}
	if err != nil {
		log.Fatalf("read version: %v", err)
	}
	fmt.Printf("version: %d (dirty: %t)\n", v, dirty)
}
