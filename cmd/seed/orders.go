package main

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/JaimeStill/sales-lab/pkg/database"
)

//go:embed seeds/orders.json
var ordersJSON []byte

func init() {
	registerSeeder(&OrderSeeder{})
}

type orderSeed struct {
	ObjectID     int64     `json:"object_id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	Category     int64     `json:"category"`
	Country      string    `json:"country"`
	CreatedDate  time.Time `json:"created_date"`
}

// OrderSeeder implements Seeder for sample sales orders. Products must exist first.
type OrderSeeder struct {
	file string
}

func (s *OrderSeeder) Name() string { return "orders" }

func (s *OrderSeeder) Description() string {
	return "Seeds sample sales orders referencing seeded products"
}

func (s *OrderSeeder) Order() int { return 1 }

// SetFile configures an external seed file path, overriding the embedded default.
func (s *OrderSeeder) SetFile(path string) {
	s.file = path
}

// Seed upserts every sales order by object_id.
func (s *OrderSeeder) Seed(ctx context.Context, tx *sql.Tx, dialect database.Dialect) error {
	var data struct {
		Orders []orderSeed `json:"orders"`
	}
	if err := loadSeedFile(s.file, ordersJSON, &data); err != nil {
		return err
	}

	q := upsert(dialect, "sales_orders", "object_id", []string{
		"object_id", "customer_name", "status", "category", "country", "created_date",
	})
	for _, o := range data.Orders {
		_, err := tx.ExecContext(ctx, q,
			o.ObjectID, o.CustomerName, o.Status, o.Category, o.Country, o.CreatedDate,
		)
		if err != nil {
			return fmt.Errorf("save order %d: %w", o.ObjectID, err)
		}
	}

	return syncIdentity(ctx, tx, dialect, "sales_orders", "object_id")
}
