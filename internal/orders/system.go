package orders

import (
	"context"

	"github.com/JaimeStill/sales-lab/pkg/pagination"
	"github.com/JaimeStill/sales-lab/pkg/salesapi"
)

// System defines the sales order storage operations behind the REST endpoints.
// Records share their wire shape with the salesapi client.
type System interface {
	List(ctx context.Context) ([]salesapi.SalesOrderRow, error)
	Products(ctx context.Context) ([]salesapi.ProductOption, error)
	Insert(ctx context.Context, in salesapi.InsertOrderInput) (int64, error)
	Update(ctx context.Context, in salesapi.UpdateOrderInput) error
	Delete(ctx context.Context, in salesapi.DeleteOrderInput) error
	Search(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[salesapi.SalesOrderRow], error)
}
