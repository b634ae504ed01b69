package main

import (
	"net/http"

	"github.com/JaimeStill/sales-lab/internal/api"
	"github.com/JaimeStill/sales-lab/internal/config"
	"github.com/JaimeStill/sales-lab/internal/infrastructure"
	"github.com/JaimeStill/sales-lab/pkg/lifecycle"
	"github.com/JaimeStill/sales-lab/pkg/middleware"
	"github.com/JaimeStill/sales-lab/pkg/module"
	"github.com/JaimeStill/sales-lab/pkg/salesapi"
	"github.com/JaimeStill/sales-lab/web/app"
	"github.com/JaimeStill/sales-lab/web/scalar"
)

// Modules holds the HTTP surfaces mounted on the root router.
type Modules struct {
	API     *module.Module
	Scalar  *module.Module
	App     http.Handler
	Metrics *middleware.Metrics
}

// NewModules builds the API and docs modules plus the root-mounted app pages.
// The app reaches the API over HTTP through the salesapi client.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	metrics := middleware.NewMetrics("sales_lab")

	apiModule, err := api.NewModule(cfg, infra, metrics)
	if err != nil {
		return nil, err
	}

	client, err := salesapi.New(&cfg.App.Client, salesapi.WithLogger(infra.Logger))
	if err != nil {
		return nil, err
	}

	appHandler, err := app.NewModule(client, infra.Logger)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule(cfg.API.BasePath + "/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
		App: middleware.Chain(
			appHandler.Router(),
			middleware.RequestID(),
			middleware.Logger(infra.Logger.With("module", "app")),
			metrics.Middleware("app"),
		),
		Metrics: metrics,
	}, nil
}

// Mount registers the prefixed modules on router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure, modules *Modules) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", handleHealthCheck)

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		handleReadinessCheck(w, infra.Lifecycle)
	})

	router.HandleNative("GET /metrics", modules.Metrics.Handler().ServeHTTP)

	router.HandleNative("/", modules.App.ServeHTTP)

	return router
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
