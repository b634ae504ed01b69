package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/sales-lab/pkg/salesapi"
)

// formDate is the layout of HTML date inputs.
const formDate = "2006-01-02"

// salesPage is the payload rendered by the sales view.
type salesPage struct {
	Orders   []salesapi.SalesOrderRow
	Products []salesapi.ProductOption
	Message  string
	Error    string

	Search     string
	Status     string
	Country    string
	Sort       string
	Paged      bool
	Page       int
	TotalPages int
	Total      int
	PrevPage   int
	NextPage   int
}

// Sales handles GET /sales. A search term, filter, sort or page parameter
// switches the listing from getData to the paginated searchData endpoint.
func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := &salesPage{
		Message: q.Get("msg"),
		Search:  q.Get("search"),
		Status:  q.Get("status"),
		Country: q.Get("country"),
		Sort:    q.Get("sort"),
	}

	if err := h.load(r.Context(), page, q); err != nil {
		h.renderError(w, page, err)
		return
	}

	h.render(w, http.StatusOK, page)
}

// Insert handles POST /sales/insert.
func (h *Handler) Insert(w http.ResponseWriter, r *http.Request) {
	in, err := parseInsertForm(r)
	if err != nil {
		h.failForm(w, r, err)
		return
	}

	msg, err := h.client.InsertOrder(r.Context(), in)
	if err != nil {
		h.failForm(w, r, err)
		return
	}
	redirectWithMessage(w, r, msg)
}

// Update handles POST /sales/update.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := parseUpdateForm(r)
	if err != nil {
		h.failForm(w, r, err)
		return
	}

	msg, err := h.client.UpdateOrder(r.Context(), in)
	if err != nil {
		h.failForm(w, r, err)
		return
	}
	redirectWithMessage(w, r, msg)
}

// Delete handles POST /sales/delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.failForm(w, r, fmt.Errorf("%w: %v", salesapi.ErrInvalidInput, err))
		return
	}

	id, err := parseID(r.PostForm.Get("object_id"), "object_id")
	if err != nil {
		h.failForm(w, r, err)
		return
	}

	msg, err := h.client.DeleteOrder(r.Context(), salesapi.DeleteOrderInput{ObjectID: id})
	if err != nil {
		h.failForm(w, r, err)
		return
	}
	redirectWithMessage(w, r, msg)
}

// filtered reports whether the request narrows or orders the listing.
func (p *salesPage) filtered() bool {
	return p.Search != "" || p.Status != "" || p.Country != "" || p.Sort != ""
}

func (h *Handler) load(ctx context.Context, page *salesPage, q url.Values) error {
	products, err := h.client.ListProducts(ctx)
	if err != nil {
		return err
	}
	page.Products = products

	if !page.filtered() && q.Get("page") == "" {
		orders, err := h.client.ListOrders(ctx)
		if err != nil {
			return err
		}
		page.Orders = orders
		return nil
	}

	n, _ := strconv.Atoi(q.Get("page"))
	result, err := h.client.SearchOrders(ctx, salesapi.PageRequest{
		Page:    n,
		Search:  page.Search,
		Sort:    page.Sort,
		Status:  page.Status,
		Country: page.Country,
	})
	if err != nil {
		return err
	}

	page.Orders = result.Data
	page.Paged = true
	page.Page = result.Page
	page.TotalPages = result.TotalPages
	page.Total = result.Total
	if result.Page > 1 {
		page.PrevPage = result.Page - 1
	}
	if result.Page < result.TotalPages {
		page.NextPage = result.Page + 1
	}
	return nil
}

// failForm re-renders the sales view with the error and the current listing.
func (h *Handler) failForm(w http.ResponseWriter, r *http.Request, err error) {
	page := &salesPage{}
	if loadErr := h.load(r.Context(), page, url.Values{}); loadErr != nil {
		h.logger.Warn("reload listing failed", "error", loadErr)
	}
	h.renderError(w, page, err)
}

func (h *Handler) renderError(w http.ResponseWriter, page *salesPage, err error) {
	status := errorStatus(err)
	h.logger.Error("sales request failed", "error", err, "status", status)

	page.Error = errorMessage(err)
	h.render(w, status, page)
}

func (h *Handler) render(w http.ResponseWriter, status int, page *salesPage) {
	data := h.templates.Data(salesView, page)
	if err := h.templates.RenderStatus(w, status, layout, salesView.Template, data); err != nil {
		h.logger.Error("render sales view failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// errorStatus maps invalid input and API 4xx responses to 400 and everything else to 502.
func errorStatus(err error) int {
	if errors.Is(err, salesapi.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if code := salesapi.StatusCode(err); code >= 400 && code < 500 {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func errorMessage(err error) string {
	var se *salesapi.StatusError
	if errors.As(err, &se) {
		if detail := se.Detail(); detail != "" {
			return detail
		}
		return se.Status
	}
	return err.Error()
}

func redirectWithMessage(w http.ResponseWriter, r *http.Request, msg *salesapi.Message) {
	target := "/sales?msg=" + url.QueryEscape(msg.Message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func parseInsertForm(r *http.Request) (salesapi.InsertOrderInput, error) {
	var in salesapi.InsertOrderInput
	if err := r.ParseForm(); err != nil {
		return in, fmt.Errorf("%w: %v", salesapi.ErrInvalidInput, err)
	}
	f := r.PostForm

	category, err := parseID(f.Get("category"), "category")
	if err != nil {
		return in, err
	}
	created, err := parseDate(f.Get("created_date"), "created_date")
	if err != nil {
		return in, err
	}

	in = salesapi.InsertOrderInput{
		CustomerName: f.Get("customer_name"),
		Status:       f.Get("status"),
		Category:     category,
		Country:      f.Get("country"),
		CreatedDate:  created,
	}
	return in, nil
}

func parseUpdateForm(r *http.Request) (salesapi.UpdateOrderInput, error) {
	var in salesapi.UpdateOrderInput
	if err := r.ParseForm(); err != nil {
		return in, fmt.Errorf("%w: %v", salesapi.ErrInvalidInput, err)
	}
	f := r.PostForm

	id, err := parseID(f.Get("object_id"), "object_id")
	if err != nil {
		return in, err
	}
	category, err := parseID(f.Get("category"), "category")
	if err != nil {
		return in, err
	}
	updated, err := parseDate(f.Get("updated_date"), "updated_date")
	if err != nil {
		return in, err
	}

	in = salesapi.UpdateOrderInput{
		CustomerName: f.Get("customer_name"),
		Status:       f.Get("status"),
		Category:     category,
		Country:      f.Get("country"),
		UpdatedDate:  updated,
		ObjectID:     id,
	}
	return in, nil
}

func parseID(v, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", salesapi.ErrInvalidInput, field)
	}
	return id, nil
}

// parseDate reads an HTML date input. An empty value means today.
func parseDate(v, field string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Now().UTC().Truncate(time.Second), nil
	}
	t, err := time.Parse(formDate, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", salesapi.ErrInvalidInput, field)
	}
	return t, nil
}
