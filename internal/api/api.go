// Package api assembles the REST API module: domain systems, routes,
// the generated OpenAPI document, and the module middleware chain.
package api

import (
	"net/http"

	"github.com/JaimeStill/sales-lab/internal/config"
	"github.com/JaimeStill/sales-lab/internal/infrastructure"
	"github.com/JaimeStill/sales-lab/pkg/middleware"
	"github.com/JaimeStill/sales-lab/pkg/module"
	"github.com/JaimeStill/sales-lab/pkg/openapi"
)

// NewModule builds the API module mounted at cfg.API.BasePath.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure, metrics *middleware.Metrics) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)
	return newModule(cfg, runtime, domain, metrics)
}

func newModule(cfg *config.Config, runtime *Runtime, domain *Domain, metrics *middleware.Metrics) (*module.Module, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, cfg.API.BasePath, runtime, domain)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID())
	m.Use(middleware.Logger(runtime.Logger))
	if metrics != nil {
		m.Use(metrics.Middleware("api"))
	}
	m.Use(middleware.CORS(&cfg.API.CORS))

	return m, nil
}
