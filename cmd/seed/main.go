package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JaimeStill/sales-lab/pkg/database"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	EnvDatabaseDSN    = "DATABASE_DSN"
	EnvDatabaseDriver = "DATABASE_DRIVER"
)

func main() {
	var (
		driver   = flag.String("driver", "", "Database driver (mysql or pgx)")
		dsn      = flag.String("dsn", "", "Database connection string")
		all      = flag.Bool("all", false, "Run all seeders")
		products = flag.Bool("products", false, "Seed products")
		orders   = flag.Bool("orders", false, "Seed sales orders")
		file     = flag.String("file", "", "External seed file for the selected seeder (overrides embedded)")
		list     = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	if *driver == "" {
		*driver = os.Getenv(EnvDatabaseDriver)
	}
	if *driver == "" {
		*driver = database.DriverMySQL
	}
	if *dsn == "" {
		*dsn = os.Getenv(EnvDatabaseDSN)
	}
	if *dsn == "" {
		log.Fatalf("database connection string required: use -dsn flag or %s env var", EnvDatabaseDSN)
	}

	cfg := database.Config{Driver: *driver}
	dialect := cfg.Dialect()

	db, err := sql.Open(*driver, *dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()

	switch {
	case *all:
		if err := runAllSeeders(ctx, db, dialect); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("all seeders completed successfully")

	case *products, *orders:
		name := "products"
		if *orders {
			name = "orders"
		}
		if *file != "" {
			if seeder, ok := getSeeder(name); ok {
				seeder.(fileSeeder).SetFile(*file)
			}
		}
		if err := runSeeder(ctx, db, dialect, name); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Printf("%s seeded successfully\n", name)

	default:
		fmt.Println("usage: seed -dsn <connection-string> [-driver mysql|pgx] [-all|-products|-orders] [-file <path>] [-list]")
		flag.PrintDefaults()
	}
}
