package orders

import (
	"net/url"

	"github.com/JaimeStill/sales-lab/pkg/query"
	"github.com/JaimeStill/sales-lab/pkg/repository"
	"github.com/JaimeStill/sales-lab/pkg/salesapi"
)

var listing = query.
	NewProjectionMap("", "v_sales_order_listing", "v").
	Project("object_id", "object_id").
	Project("customer_name", "customer_name").
	Project("status", "status").
	Project("name", "name").
	Project("country", "country").
	Project("created_date", "created_date")

var products = query.
	NewProjectionMap("", "products", "p").
	Project("object_id", "object_id").
	Project("name", "name")

var defaultSort = query.SortField{Field: "created_date", Descending: true}

var searchFields = []string{"customer_name", "name", "country", "status"}

func scanOrder(s repository.Scanner) (salesapi.SalesOrderRow, error) {
	var o salesapi.SalesOrderRow
	err := s.Scan(&o.ObjectID, &o.CustomerName, &o.Status, &o.Name, &o.Country, &o.CreatedDate)
	return o, err
}

func scanProduct(s repository.Scanner) (salesapi.ProductOption, error) {
	var p salesapi.ProductOption
	err := s.Scan(&p.ObjectID, &p.Name)
	return p, err
}

// Filters contains optional filtering criteria for sales order searches.
type Filters struct {
	Status  *string
	Country *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if c := values.Get("country"); c != "" {
		f.Country = &c
	}
	return f
}

// Apply adds filter conditions to a query builder. Nil filters are skipped.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Status != nil {
		b.WhereEquals("status", *f.Status)
	}
	if f.Country != nil {
		b.WhereEquals("country", *f.Country)
	}
	return b
}
