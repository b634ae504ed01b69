package orders_test

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/sales-lab/internal/orders"
	"github.com/JaimeStill/sales-lab/pkg/database"
	"github.com/JaimeStill/sales-lab/pkg/logging"
	"github.com/JaimeStill/sales-lab/pkg/pagination"
	"github.com/JaimeStill/sales-lab/pkg/salesapi"
)

var dialects = []database.Dialect{database.MySQL, database.Postgres}

var listingColumns = []string{"object_id", "customer_name", "status", "name", "country", "created_date"}

func newRepo(t *testing.T, dialect database.Dialect) (orders.System, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		db.Close()
	})

	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	return orders.New(db, dialect, logging.Discard(), cfg), mock
}

// sqlPattern matches the literal fragments in order, allowing anything between them.
func sqlPattern(fragments ...string) string {
	quoted := make([]string, len(fragments))
	for i, f := range fragments {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return "(?s)" + strings.Join(quoted, ".*")
}

// placeholders renders the dialect bind parameters for positions start..start+count-1.
func placeholders(d database.Dialect, start, count int) []string {
	ps := make([]string, count)
	for i := range count {
		ps[i] = d.Placeholder(start + i)
	}
	return ps
}

func insertInput() salesapi.InsertOrderInput {
	return salesapi.InsertOrderInput{
		CustomerName: "Aisha Rahman",
		Status:       "Pending",
		Category:     2,
		Country:      "Malaysia",
		CreatedDate:  created,
	}
}

func updateInput() salesapi.UpdateOrderInput {
	return salesapi.UpdateOrderInput{
		CustomerName: "Aisha Rahman",
		Status:       "Shipped",
		Category:     2,
		Country:      "Malaysia",
		UpdatedDate:  created.Add(48 * time.Hour),
		ObjectID:     7,
	}
}

func TestRepo_List(t *testing.T) {
	for _, d := range dialects {
		t.Run(string(d), func(t *testing.T) {
			repo, mock := newRepo(t, d)

			mock.ExpectQuery(sqlPattern(
				"SELECT v.object_id, v.customer_name, v.status, v.name, v.country, v.created_date FROM v_sales_order_listing v ORDER BY v.created_date DESC",
			)).WillReturnRows(sqlmock.NewRows(listingColumns).
				AddRow(int64(2), "Lena Fischer", "Open", "Laptop", "Germany", created).
				AddRow(int64(1), "Aisha Rahman", "Pending", "Monitor", "Malaysia", created.Add(-time.Hour)))

			rows, err := repo.List(t.Context())
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(rows) != 2 {
				t.Fatalf("len(rows) = %d, want 2", len(rows))
			}
			if rows[0].ObjectID != 2 || rows[0].Name != "Laptop" || !rows[0].CreatedDate.Equal(created) {
				t.Errorf("rows[0] = %+v, want object 2 Laptop at %v", rows[0], created)
			}
		})
	}
}

func TestRepo_List_Empty(t *testing.T) {
	repo, mock := newRepo(t, database.MySQL)
	mock.ExpectQuery(sqlPattern("FROM v_sales_order_listing v")).
		WillReturnRows(sqlmock.NewRows(listingColumns))

	rows, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %#v, want empty non-nil slice", rows)
	}
}

func TestRepo_Products(t *testing.T) {
	for _, d := range dialects {
		t.Run(string(d), func(t *testing.T) {
			repo, mock := newRepo(t, d)

			mock.ExpectQuery(sqlPattern(
				"SELECT DISTINCT p.object_id, p.name FROM products p ORDER BY p.name ASC",
			)).WillReturnRows(sqlmock.NewRows([]string{"object_id", "name"}).
				AddRow(int64(3), "Keyboard").
				AddRow(int64(1), "Laptop"))

			items, err := repo.Products(t.Context())
			if err != nil {
				t.Fatalf("Products() error = %v", err)
			}
			want := []salesapi.ProductOption{{ObjectID: 3, Name: "Keyboard"}, {ObjectID: 1, Name: "Laptop"}}
			if len(items) != len(want) {
				t.Fatalf("len(items) = %d, want %d", len(items), len(want))
			}
			for i := range want {
				if items[i] != want[i] {
					t.Errorf("items[%d] = %+v, want %+v", i, items[i], want[i])
				}
			}
		})
	}
}

func TestRepo_Search(t *testing.T) {
	tests := []struct {
		dialect database.Dialect
		where   string
	}{
		{
			database.MySQL,
			"WHERE (v.customer_name LIKE ? ESCAPE '!' OR v.name LIKE ? ESCAPE '!' OR v.country LIKE ? ESCAPE '!' OR v.status LIKE ? ESCAPE '!') AND v.status = ?",
		},
		{
			database.Postgres,
			"WHERE (v.customer_name ILIKE $1 ESCAPE '!' OR v.name ILIKE $2 ESCAPE '!' OR v.country ILIKE $3 ESCAPE '!' OR v.status ILIKE $4 ESCAPE '!') AND v.status = $5",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			repo, mock := newRepo(t, tt.dialect)

			pattern := "%50!%%"
			args := []driver.Value{pattern, pattern, pattern, pattern, "Open"}

			mock.ExpectQuery(sqlPattern("SELECT COUNT(*) FROM v_sales_order_listing v " + tt.where)).
				WithArgs(args...).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

			mock.ExpectQuery(sqlPattern(
				"FROM v_sales_order_listing v "+tt.where,
				"ORDER BY v.created_date DESC LIMIT 10 OFFSET 10",
			)).
				WithArgs(args...).
				WillReturnRows(sqlmock.NewRows(listingColumns).
					AddRow(int64(11), "50% Club", "Open", "Laptop", "Chile", created))

			search := "50%"
			status := "Open"
			result, err := repo.Search(
				t.Context(),
				pagination.PageRequest{Page: 2, PageSize: 10, Search: &search},
				orders.Filters{Status: &status},
			)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}

			if result.Total != 11 {
				t.Errorf("Total = %d, want 11", result.Total)
			}
			if result.TotalPages != 2 {
				t.Errorf("TotalPages = %d, want 2", result.TotalPages)
			}
			if result.Page != 2 || result.PageSize != 10 {
				t.Errorf("Page, PageSize = %d, %d, want 2, 10", result.Page, result.PageSize)
			}
			if len(result.Data) != 1 || result.Data[0].CustomerName != "50% Club" {
				t.Errorf("Data = %+v, want the single 50%% Club row", result.Data)
			}
		})
	}
}

func TestRepo_Search_NormalizesPage(t *testing.T) {
	repo, mock := newRepo(t, database.Postgres)

	mock.ExpectQuery(sqlPattern("SELECT COUNT(*) FROM v_sales_order_listing v")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(sqlPattern("ORDER BY v.created_date DESC LIMIT 100 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows(listingColumns))

	result, err := repo.Search(t.Context(), pagination.PageRequest{Page: -3, PageSize: 5000}, orders.Filters{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Page != 1 || result.PageSize != 100 {
		t.Errorf("Page, PageSize = %d, %d, want 1, 100", result.Page, result.PageSize)
	}
	if result.TotalPages != 1 || len(result.Data) != 0 {
		t.Errorf("TotalPages = %d, len(Data) = %d, want 1, 0", result.TotalPages, len(result.Data))
	}
}

func TestRepo_Insert(t *testing.T) {
	in := insertInput()
	args := []driver.Value{in.CustomerName, in.Status, in.Category, in.Country, in.CreatedDate}

	t.Run("mysql", func(t *testing.T) {
		repo, mock := newRepo(t, database.MySQL)

		mock.ExpectBegin()
		mock.ExpectExec(sqlPattern(
			"INSERT INTO sales_orders (customer_name, status, category, country, created_date) VALUES (?, ?, ?, ?, ?)",
		)).WithArgs(args...).WillReturnResult(sqlmock.NewResult(42, 1))
		mock.ExpectCommit()

		id, err := repo.Insert(t.Context(), in)
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if id != 42 {
			t.Errorf("id = %d, want 42", id)
		}
	})

	t.Run("postgres", func(t *testing.T) {
		repo, mock := newRepo(t, database.Postgres)

		mock.ExpectBegin()
		mock.ExpectQuery(sqlPattern(
			"INSERT INTO sales_orders (customer_name, status, category, country, created_date) VALUES ($1, $2, $3, $4, $5) RETURNING object_id",
		)).WithArgs(args...).WillReturnRows(sqlmock.NewRows([]string{"object_id"}).AddRow(int64(42)))
		mock.ExpectCommit()

		id, err := repo.Insert(t.Context(), in)
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if id != 42 {
			t.Errorf("id = %d, want 42", id)
		}
	})
}

func TestRepo_Update(t *testing.T) {
	in := updateInput()
	args := []driver.Value{in.CustomerName, in.Status, in.Category, in.Country, in.UpdatedDate, in.ObjectID}

	for _, d := range dialects {
		t.Run(string(d), func(t *testing.T) {
			repo, mock := newRepo(t, d)
			ps := placeholders(d, 1, 6)

			mock.ExpectBegin()
			mock.ExpectExec(sqlPattern(
				"UPDATE sales_orders",
				"SET customer_name = "+ps[0]+", status = "+ps[1]+", category = "+ps[2]+", country = "+ps[3]+", updated_date = "+ps[4],
				"WHERE object_id = "+ps[5],
			)).WithArgs(args...).WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			if err := repo.Update(t.Context(), in); err != nil {
				t.Errorf("Update() error = %v", err)
			}
		})
	}
}

func TestRepo_Delete(t *testing.T) {
	for _, d := range dialects {
		t.Run(string(d), func(t *testing.T) {
			repo, mock := newRepo(t, d)

			mock.ExpectBegin()
			mock.ExpectExec(sqlPattern("DELETE FROM sales_orders WHERE object_id = " + d.Placeholder(1))).
				WithArgs(int64(7)).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			if err := repo.Delete(t.Context(), salesapi.DeleteOrderInput{ObjectID: 7}); err != nil {
				t.Errorf("Delete() error = %v", err)
			}
		})
	}
}

func TestRepo_NoRowsAffected(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		call func(orders.System, *testing.T) error
	}{
		{
			"update",
			"UPDATE sales_orders",
			func(r orders.System, t *testing.T) error { return r.Update(t.Context(), updateInput()) },
		},
		{
			"delete",
			"DELETE FROM sales_orders",
			func(r orders.System, t *testing.T) error {
				return r.Delete(t.Context(), salesapi.DeleteOrderInput{ObjectID: 404})
			},
		},
	}

	for _, d := range dialects {
		for _, tt := range tests {
			t.Run(string(d)+"/"+tt.name, func(t *testing.T) {
				repo, mock := newRepo(t, d)

				mock.ExpectBegin()
				mock.ExpectExec(sqlPattern(tt.sql)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()

				err := tt.call(repo, t)
				if !errors.Is(err, orders.ErrNotFound) {
					t.Errorf("error = %v, want %v", err, orders.ErrNotFound)
				}
			})
		}
	}
}

func TestRepo_DriverErrors(t *testing.T) {
	tests := []struct {
		name    string
		dialect database.Dialect
		err     error
		want    error
	}{
		{"mysql foreign key", database.MySQL, &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, orders.ErrUnknownProduct},
		{"mysql duplicate", database.MySQL, &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, orders.ErrDuplicate},
		{"postgres foreign key", database.Postgres, &pgconn.PgError{Code: "23503"}, orders.ErrUnknownProduct},
		{"postgres duplicate", database.Postgres, &pgconn.PgError{Code: "23505"}, orders.ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/insert", func(t *testing.T) {
			repo, mock := newRepo(t, tt.dialect)

			mock.ExpectBegin()
			if tt.dialect == database.Postgres {
				mock.ExpectQuery(sqlPattern("INSERT INTO sales_orders", "RETURNING object_id")).WillReturnError(tt.err)
			} else {
				mock.ExpectExec(sqlPattern("INSERT INTO sales_orders")).WillReturnError(tt.err)
			}
			mock.ExpectRollback()

			_, err := repo.Insert(t.Context(), insertInput())
			if !errors.Is(err, tt.want) {
				t.Errorf("Insert() error = %v, want %v", err, tt.want)
			}
		})

		t.Run(tt.name+"/update", func(t *testing.T) {
			repo, mock := newRepo(t, tt.dialect)

			mock.ExpectBegin()
			mock.ExpectExec(sqlPattern("UPDATE sales_orders")).WillReturnError(tt.err)
			mock.ExpectRollback()

			err := repo.Update(t.Context(), updateInput())
			if !errors.Is(err, tt.want) {
				t.Errorf("Update() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRepo_UnrecognizedErrorPassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	repo, mock := newRepo(t, database.MySQL)

	mock.ExpectBegin()
	mock.ExpectExec(sqlPattern("DELETE FROM sales_orders")).WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.Delete(t.Context(), salesapi.DeleteOrderInput{ObjectID: 7})
	if !errors.Is(err, boom) {
		t.Errorf("Delete() error = %v, want %v", err, boom)
	}
	if errors.Is(err, orders.ErrNotFound) || errors.Is(err, orders.ErrDuplicate) {
		t.Errorf("Delete() error = %v, want no domain mapping", err)
	}
}

func TestRepo_InvalidInputSkipsDatabase(t *testing.T) {
	repo, _ := newRepo(t, database.Postgres)

	bad := insertInput()
	bad.Category = 0

	tests := []struct {
		name string
		call func() error
	}{
		{"insert", func() error { _, err := repo.Insert(t.Context(), bad); return err }},
		{"update", func() error { return repo.Update(t.Context(), salesapi.UpdateOrderInput{}) }},
		{"delete", func() error { return repo.Delete(t.Context(), salesapi.DeleteOrderInput{ObjectID: -1}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, orders.ErrInvalidOrder) {
				t.Errorf("error = %v, want %v", err, orders.ErrInvalidOrder)
			}
		})
	}
}
