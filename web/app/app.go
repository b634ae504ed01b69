// Package app provides the server-rendered web application: a home view, the
// sales order view with its form actions, and a not-found view for every other path.
package app

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/sales-lab/pkg/salesapi"
	"github.com/JaimeStill/sales-lab/pkg/web"
)

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

//go:embed static/*
var staticFS embed.FS

const layout = "app.html"

var homeView = web.ViewDef{Route: "/{$}", Template: "home.html", Title: "Home", Bundle: "app"}

var salesView = web.ViewDef{Route: "/sales", Template: "sales.html", Title: "Sales", Bundle: "app"}

var notFoundView = web.ViewDef{Template: "404.html", Title: "Not Found", Bundle: "app"}

// Views returns the static route table served by the app.
func Views() []web.ViewDef {
	return []web.ViewDef{homeView, salesView}
}

// Handler serves the app views. Pages reach the orders API only through client.
type Handler struct {
	templates *web.TemplateSet
	client    salesapi.Service
	logger    *slog.Logger
}

// NewModule parses the embedded templates and returns the app handler.
// Template errors surface here so the server fails at startup.
func NewModule(client salesapi.Service, logger *slog.Logger) (*Handler, error) {
	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		"",
		[]web.ViewDef{homeView, salesView, notFoundView},
	)
	if err != nil {
		return nil, err
	}

	return &Handler{
		templates: ts,
		client:    client,
		logger:    logger.With("module", "app"),
	}, nil
}

// Router builds the route table. Unmatched paths render the not-found view.
func (h *Handler) Router() http.Handler {
	r := web.NewRouter()
	r.SetFallback(h.templates.ErrorHandler(layout, notFoundView, http.StatusNotFound))

	r.HandleFunc("GET "+homeView.Route, h.templates.PageHandler(layout, homeView))
	r.HandleFunc("GET "+salesView.Route, h.Sales)
	r.HandleFunc("POST /sales/insert", h.Insert)
	r.HandleFunc("POST /sales/update", h.Update)
	r.HandleFunc("POST /sales/delete", h.Delete)
	r.HandleFunc("GET /static/", web.DistServer(staticFS, "static", "/static/"))

	return r
}
