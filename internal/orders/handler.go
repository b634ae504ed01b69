package orders

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/sales-lab/pkg/handlers"
	"github.com/JaimeStill/sales-lab/pkg/pagination"
	"github.com/JaimeStill/sales-lab/pkg/routes"
	"github.com/JaimeStill/sales-lab/pkg/salesapi"
)

// Acknowledgement messages returned by the write endpoints.
const (
	MsgInserted = "record inserted"
	MsgUpdated  = "record updated"
	MsgDeleted  = "record deleted"
)

// Handler provides HTTP handlers for the sales order endpoints.
type Handler struct {
	sys         System
	logger      *slog.Logger
	pagination  pagination.Config
	maxBodySize int64
}

// NewHandler creates a sales order HTTP handler. Request bodies are limited to maxBodySize bytes.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger,
		pagination:  pagination,
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group for the sales order endpoints.
// Paths sit directly under the API base path to match the client's endpoint names.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "",
		Tags:        []string{"Sales Orders"},
		Description: "Sales order listing and record maintenance",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/" + salesapi.PathGetData, Handler: h.GetData, OpenAPI: Spec.GetData},
			{Method: "GET", Pattern: "/" + salesapi.PathGetDistinctProduct, Handler: h.GetDistinctProduct, OpenAPI: Spec.GetDistinctProduct},
			{Method: "POST", Pattern: "/" + salesapi.PathAddRecord, Handler: h.AddRecord, OpenAPI: Spec.AddRecord},
			{Method: "POST", Pattern: "/" + salesapi.PathUpdateRecord, Handler: h.UpdateRecord, OpenAPI: Spec.UpdateRecord},
			{Method: "POST", Pattern: "/" + salesapi.PathDeleteRecord, Handler: h.DeleteRecord, OpenAPI: Spec.DeleteRecord},
			{Method: "GET", Pattern: "/" + salesapi.PathSearchData, Handler: h.SearchData, OpenAPI: Spec.SearchData},
		},
		Schemas: Spec.Schemas(),
	}
}

// GetData handles GET /getData to return every sales order row, newest first.
func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	rows, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rows)
}

// GetDistinctProduct handles GET /getDistinctProduct to return the product options.
func (h *Handler) GetDistinctProduct(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.Products(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// AddRecord handles POST /addRecord to insert a sales order.
func (h *Handler) AddRecord(w http.ResponseWriter, r *http.Request) {
	var in salesapi.InsertOrderInput
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &in); err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), err)
		return
	}

	id, err := h.sys.Insert(r.Context(), in)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, salesapi.Message{Message: MsgInserted, ObjectID: id})
}

// UpdateRecord handles POST /updateRecord to update a sales order by object_id.
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var in salesapi.UpdateOrderInput
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &in); err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), err)
		return
	}

	if err := h.sys.Update(r.Context(), in); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, salesapi.Message{Message: MsgUpdated, ObjectID: in.ObjectID})
}

// DeleteRecord handles POST /deleteRecord to delete a sales order by object_id.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	var in salesapi.DeleteOrderInput
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &in); err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), err)
		return
	}

	if err := h.sys.Delete(r.Context(), in); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, salesapi.Message{Message: MsgDeleted, ObjectID: in.ObjectID})
}

// SearchData handles GET /searchData to return a filtered page of sales orders.
func (h *Handler) SearchData(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.Search(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
