package main

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/JaimeStill/sales-lab/pkg/database"
	"github.com/JaimeStill/sales-lab/pkg/salesapi"
)

//go:embed seeds/products.json
var productsJSON []byte

func init() {
	registerSeeder(&ProductSeeder{})
}

// ProductSeeder implements Seeder for the products catalog.
type ProductSeeder struct {
	file string
}

func (s *ProductSeeder) Name() string { return "products" }

func (s *ProductSeeder) Description() string {
	return "Seeds the product catalog used by order forms"
}

func (s *ProductSeeder) Order() int { return 0 }

// SetFile configures an external seed file path, overriding the embedded default.
func (s *ProductSeeder) SetFile(path string) {
	s.file = path
}

// Seed upserts every product by object_id.
func (s *ProductSeeder) Seed(ctx context.Context, tx *sql.Tx, dialect database.Dialect) error {
	var data struct {
		Products []salesapi.ProductOption `json:"products"`
	}
	if err := loadSeedFile(s.file, productsJSON, &data); err != nil {
		return err
	}

	q := upsert(dialect, "products", "object_id", []string{"object_id", "name"})
	for _, p := range data.Products {
		if _, err := tx.ExecContext(ctx, q, p.ObjectID, p.Name); err != nil {
			return fmt.Errorf("save product %s: %w", p.Name, err)
		}
	}

	return syncIdentity(ctx, tx, dialect, "products", "object_id")
}
