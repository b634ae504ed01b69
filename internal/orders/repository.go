package orders

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/sales-lab/pkg/database"
	"github.com/JaimeStill/sales-lab/pkg/pagination"
	"github.com/JaimeStill/sales-lab/pkg/query"
	"github.com/JaimeStill/sales-lab/pkg/repository"
	"github.com/JaimeStill/sales-lab/pkg/salesapi"
)

type repo struct {
	db         *sql.DB
	dialect    database.Dialect
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a sales order repository implementing the System interface.
func New(db *sql.DB, dialect database.Dialect, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		dialect:    dialect,
		logger:     logger.With("system", "orders"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context) ([]salesapi.SalesOrderRow, error) {
	q, args := query.NewBuilder(r.dialect, listing, defaultSort).BuildAll()

	rows, err := repository.QueryMany(ctx, r.db, q, args, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("query sales orders: %w", err)
	}
	return rows, nil
}

func (r *repo) Products(ctx context.Context) ([]salesapi.ProductOption, error) {
	q := fmt.Sprintf(
		"SELECT DISTINCT %s FROM %s ORDER BY %s ASC",
		products.Columns(),
		products.Table(),
		products.Column("name"),
	)

	items, err := repository.QueryMany(ctx, r.db, q, nil, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return items, nil
}

func (r *repo) Search(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[salesapi.SalesOrderRow], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(r.dialect, listing, defaultSort).
		WhereSearch(page.Search, searchFields...)

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderBy(page.Sort...)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count sales orders: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	rows, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("query sales orders: %w", err)
	}

	result := pagination.NewPageResult(rows, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Insert(ctx context.Context, in salesapi.InsertOrderInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	q := fmt.Sprintf(
		"INSERT INTO sales_orders (customer_name, status, category, country, created_date) VALUES (%s)",
		r.dialect.Placeholders(1, 5),
	)
	args := []any{in.CustomerName, in.Status, in.Category, in.Country, in.CreatedDate}

	var id int64
	err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if r.dialect == database.Postgres {
			return tx.QueryRowContext(ctx, q+" RETURNING object_id", args...).Scan(&id)
		}

		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})

	if err != nil {
		return 0, r.mapError(err)
	}

	r.logger.Info("sales order inserted", "object_id", id, "customer_name", in.CustomerName)
	return id, nil
}

func (r *repo) Update(ctx context.Context, in salesapi.UpdateOrderInput) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	q := fmt.Sprintf(`
		UPDATE sales_orders
		SET customer_name = %s, status = %s, category = %s, country = %s, updated_date = %s
		WHERE object_id = %s`,
		r.dialect.Placeholder(1),
		r.dialect.Placeholder(2),
		r.dialect.Placeholder(3),
		r.dialect.Placeholder(4),
		r.dialect.Placeholder(5),
		r.dialect.Placeholder(6),
	)

	err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return execExpectOne(ctx, tx, q,
			in.CustomerName, in.Status, in.Category, in.Country, in.UpdatedDate, in.ObjectID,
		)
	})

	if err != nil {
		return r.mapError(err)
	}

	r.logger.Info("sales order updated", "object_id", in.ObjectID)
	return nil
}

func (r *repo) Delete(ctx context.Context, in salesapi.DeleteOrderInput) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	q := "DELETE FROM sales_orders WHERE object_id = " + r.dialect.Placeholder(1)

	err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return execExpectOne(ctx, tx, q, in.ObjectID)
	})

	if err != nil {
		return r.mapError(err)
	}

	r.logger.Info("sales order deleted", "object_id", in.ObjectID)
	return nil
}

func (r *repo) mapError(err error) error {
	if repository.IsForeignKey(err) {
		return fmt.Errorf("%w: %v", ErrUnknownProduct, err)
	}
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

// execExpectOne runs q and reports sql.ErrNoRows when no row was affected.
func execExpectOne(ctx context.Context, tx *sql.Tx, q string, args ...any) error {
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
