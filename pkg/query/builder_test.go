package query_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/JaimeStill/sales-lab/pkg/database"
	"github.com/JaimeStill/sales-lab/pkg/query"
)

func newTestProjection() *query.ProjectionMap {
	return query.NewProjectionMap("", "v_sales_order_listing", "v").
		Project("object_id", "object_id").
		Project("customer_name", "customer_name").
		Project("country", "country")
}

var byName = query.SortField{Field: "customer_name"}

func TestBuilder_BuildCount_NoConditions(t *testing.T) {
	b := query.NewBuilder(database.MySQL, newTestProjection(), byName)

	sql, args := b.BuildCount()

	want := "SELECT COUNT(*) FROM v_sales_order_listing v"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilder_BuildAll(t *testing.T) {
	b := query.NewBuilder(database.MySQL, newTestProjection(), query.SortField{Field: "object_id", Descending: true})

	sql, _ := b.BuildAll()

	want := "SELECT v.object_id, v.customer_name, v.country FROM v_sales_order_listing v ORDER BY v.object_id DESC"
	if sql != want {
		t.Errorf("BuildAll() sql = %q, want %q", sql, want)
	}
}

func TestBuilder_BuildPage_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantSuffix string
	}{
		{"first page", 1, 20, "LIMIT 20 OFFSET 0"},
		{"second page", 2, 20, "LIMIT 20 OFFSET 20"},
		{"third page", 3, 10, "LIMIT 10 OFFSET 20"},
		{"zero page", 0, 20, "LIMIT 20 OFFSET 0"},
		{"negative page", -4, 20, "LIMIT 20 OFFSET 0"},
		{"overflowing page", math.MaxInt, 20, fmt.Sprintf("LIMIT 20 OFFSET %d", math.MaxInt/20*20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(database.MySQL, newTestProjection(), byName)
			sql, _ := b.BuildPage(tt.page, tt.pageSize)

			if !strings.HasSuffix(sql, tt.wantSuffix) {
				t.Errorf("BuildPage() = %q, want suffix %q", sql, tt.wantSuffix)
			}
		})
	}
}

func TestBuilder_BuildSingle_Placeholder(t *testing.T) {
	tests := []struct {
		dialect database.Dialect
		want    string
	}{
		{database.MySQL, "WHERE v.object_id = ?"},
		{database.Postgres, "WHERE v.object_id = $1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			sql, args := query.NewBuilder(tt.dialect, newTestProjection(), byName).BuildSingle("object_id", int64(7))

			if !strings.HasSuffix(sql, tt.want) {
				t.Errorf("BuildSingle() = %q, want suffix %q", sql, tt.want)
			}
			if len(args) != 1 || args[0] != int64(7) {
				t.Errorf("BuildSingle() args = %v, want [7]", args)
			}
		})
	}
}

func TestBuilder_OrderBy(t *testing.T) {
	tests := []struct {
		name   string
		fields []query.SortField
		want   string
	}{
		{"default", nil, "ORDER BY v.customer_name ASC"},
		{"descending", []query.SortField{{Field: "country", Descending: true}}, "ORDER BY v.country DESC"},
		{"multiple", []query.SortField{{Field: "country"}, {Field: "object_id", Descending: true}}, "ORDER BY v.country ASC, v.object_id DESC"},
		{"unknown ignored", []query.SortField{{Field: "1; DROP TABLE products"}}, "ORDER BY v.customer_name ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := query.NewBuilder(database.MySQL, newTestProjection(), byName).
				OrderBy(tt.fields...).
				BuildPage(1, 20)

			if !strings.Contains(sql, tt.want) {
				t.Errorf("BuildPage() = %q, want %q", sql, tt.want)
			}
		})
	}
}

func TestBuilder_WhereEquals(t *testing.T) {
	sql, args := query.NewBuilder(database.Postgres, newTestProjection(), byName).
		WhereEquals("country", "Malaysia").
		BuildCount()

	if !strings.Contains(sql, "WHERE v.country = $1") {
		t.Errorf("BuildCount() = %q, missing where clause", sql)
	}
	if len(args) != 1 || args[0] != "Malaysia" {
		t.Errorf("BuildCount() args = %v, want [Malaysia]", args)
	}
}

func TestBuilder_IgnoredConditions(t *testing.T) {
	empty := ""

	tests := []struct {
		name  string
		apply func(*query.Builder)
	}{
		{"nil equals", func(b *query.Builder) { b.WhereEquals("country", nil) }},
		{"nil contains", func(b *query.Builder) { b.WhereContains("country", nil) }},
		{"empty contains", func(b *query.Builder) { b.WhereContains("country", &empty) }},
		{"empty in", func(b *query.Builder) { b.WhereIn("object_id", []any{}) }},
		{"nil search", func(b *query.Builder) { b.WhereSearch(nil, "country") }},
		{"search without fields", func(b *query.Builder) { b.WhereSearch(&empty) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(database.MySQL, newTestProjection(), byName)
			tt.apply(b)

			sql, args := b.BuildCount()
			if strings.Contains(sql, "WHERE") {
				t.Errorf("BuildCount() = %q, want no WHERE", sql)
			}
			if len(args) != 0 {
				t.Errorf("BuildCount() args = %v, want empty", args)
			}
		})
	}
}

func TestBuilder_WhereContains_Dialect(t *testing.T) {
	name := "tan"

	tests := []struct {
		dialect database.Dialect
		want    string
	}{
		{database.MySQL, "WHERE v.customer_name LIKE ? ESCAPE '!'"},
		{database.Postgres, "WHERE v.customer_name ILIKE $1 ESCAPE '!'"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			sql, args := query.NewBuilder(tt.dialect, newTestProjection(), byName).
				WhereContains("customer_name", &name).
				BuildCount()

			if !strings.Contains(sql, tt.want) {
				t.Errorf("BuildCount() = %q, want %q", sql, tt.want)
			}
			if len(args) != 1 || args[0] != "%tan%" {
				t.Errorf("BuildCount() args = %v, want [%%tan%%]", args)
			}
		})
	}
}

func TestBuilder_ContainsEscapesWildcards(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"%", "%!%%"},
		{"a_b", "%a!_b%"},
		{"50% off!", "%50!% off!!%"},
		{"plain", "%plain%"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value := tt.input
			_, containsArgs := query.NewBuilder(database.MySQL, newTestProjection(), byName).
				WhereContains("country", &value).
				BuildCount()
			_, searchArgs := query.NewBuilder(database.MySQL, newTestProjection(), byName).
				WhereSearch(&value, "customer_name").
				BuildCount()

			if len(containsArgs) != 1 || containsArgs[0] != tt.want {
				t.Errorf("WhereContains args = %v, want [%s]", containsArgs, tt.want)
			}
			if len(searchArgs) != 1 || searchArgs[0] != tt.want {
				t.Errorf("WhereSearch args = %v, want [%s]", searchArgs, tt.want)
			}
		})
	}
}

func TestBuilder_WhereIn(t *testing.T) {
	sql, args := query.NewBuilder(database.Postgres, newTestProjection(), byName).
		WhereIn("object_id", []any{1, 2, 3}).
		BuildCount()

	if !strings.Contains(sql, "WHERE v.object_id IN ($1, $2, $3)") {
		t.Errorf("BuildCount() = %q, missing IN clause", sql)
	}
	if len(args) != 3 {
		t.Errorf("len(args) = %d, want 3", len(args))
	}
}

func TestBuilder_WhereSearch(t *testing.T) {
	search := "my"
	sql, args := query.NewBuilder(database.Postgres, newTestProjection(), byName).
		WhereSearch(&search, "customer_name", "country").
		BuildCount()

	want := "WHERE (v.customer_name ILIKE $1 ESCAPE '!' OR v.country ILIKE $2 ESCAPE '!')"
	if !strings.Contains(sql, want) {
		t.Errorf("BuildCount() = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("len(args) = %d, want 2", len(args))
	}
}

func TestBuilder_MultipleConditions_Numbering(t *testing.T) {
	search := "tan"
	sql, args := query.NewBuilder(database.Postgres, newTestProjection(), byName).
		WhereEquals("country", "Singapore").
		WhereSearch(&search, "customer_name", "country").
		BuildCount()

	want := "WHERE v.country = $1 AND (v.customer_name ILIKE $2 ESCAPE '!' OR v.country ILIKE $3 ESCAPE '!')"
	if !strings.Contains(sql, want) {
		t.Errorf("BuildCount() = %q, want %q", sql, want)
	}
	if len(args) != 3 || args[0] != "Singapore" || args[1] != "%tan%" {
		t.Errorf("args = %v, want [Singapore %%tan%% %%tan%%]", args)
	}
}
