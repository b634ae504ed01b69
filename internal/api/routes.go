package api

import (
	"net/http"

	"github.com/JaimeStill/sales-lab/internal/orders"
	"github.com/JaimeStill/sales-lab/pkg/openapi"
	"github.com/JaimeStill/sales-lab/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, spec *openapi.Spec, basePath string, runtime *Runtime, domain *Domain) {
	ordersHandler := orders.NewHandler(domain.Orders, runtime.Logger, runtime.Pagination, runtime.MaxBodySize)

	routes.Register(
		mux,
		basePath,
		spec,
		ordersHandler.Routes(),
	)
}
