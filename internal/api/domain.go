package api

import "github.com/JaimeStill/sales-lab/internal/orders"

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Orders orders.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Orders: orders.New(
			runtime.Database.Connection(),
			runtime.Database.Dialect(),
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
