package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/sales-lab/internal/config"
	"github.com/JaimeStill/sales-lab/internal/infrastructure"
	"github.com/JaimeStill/sales-lab/internal/orders"
	"github.com/JaimeStill/sales-lab/pkg/lifecycle"
	"github.com/JaimeStill/sales-lab/pkg/logging"
	"github.com/JaimeStill/sales-lab/pkg/middleware"
	"github.com/JaimeStill/sales-lab/pkg/pagination"
	"github.com/JaimeStill/sales-lab/pkg/salesapi"
)

type stubOrders struct{}

func (stubOrders) List(ctx context.Context) ([]salesapi.SalesOrderRow, error) {
	return []salesapi.SalesOrderRow{{ObjectID: 1, CustomerName: "Tan"}}, nil
}

func (stubOrders) Products(ctx context.Context) ([]salesapi.ProductOption, error) {
	return []salesapi.ProductOption{{ObjectID: 1, Name: "Books"}}, nil
}

func (stubOrders) Insert(ctx context.Context, in salesapi.InsertOrderInput) (int64, error) {
	return 1, nil
}

func (stubOrders) Update(ctx context.Context, in salesapi.UpdateOrderInput) error { return nil }

func (stubOrders) Delete(ctx context.Context, in salesapi.DeleteOrderInput) error { return nil }

func (stubOrders) Search(ctx context.Context, page pagination.PageRequest, filters orders.Filters) (*pagination.PageResult[salesapi.SalesOrderRow], error) {
	result := pagination.NewPageResult[salesapi.SalesOrderRow](nil, 0, page.Page, page.PageSize)
	return &result, nil
}

func testModule(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{Version: "1.0.0", Domain: "http://localhost:3000"}
	cfg.API.BasePath = "/api"
	cfg.API.OpenAPI.Title = "Sales API"
	cfg.API.Pagination = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

	runtime := &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: lifecycle.New(),
			Logger:    logging.Discard(),
		},
		Pagination:  cfg.API.Pagination,
		MaxBodySize: 1 << 20,
	}

	m, err := newModule(cfg, runtime, &Domain{Orders: stubOrders{}}, nil)
	if err != nil {
		t.Fatalf("newModule() error = %v", err)
	}
	if m.Prefix() != "/api" {
		t.Errorf("Prefix() = %q, want /api", m.Prefix())
	}
	return http.HandlerFunc(m.Serve)
}

func TestModule_Routes(t *testing.T) {
	h := testModule(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/getData", "", http.StatusOK},
		{http.MethodGet, "/api/getDistinctProduct", "", http.StatusOK},
		{http.MethodGet, "/api/searchData?page=1", "", http.StatusOK},
		{http.MethodPost, "/api/addRecord", `{"customer_name":"Tan"}`, http.StatusCreated},
		{http.MethodPost, "/api/updateRecord", `{"object_id":1}`, http.StatusOK},
		{http.MethodPost, "/api/deleteRecord", `{"object_id":1}`, http.StatusOK},
		{http.MethodGet, "/api/addRecord", "", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/getData", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/missing", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %q)", rec.Code, tt.want, rec.Body.String())
			}
			if rec.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("request id header missing")
			}
		})
	}
}

func TestModule_OpenAPI(t *testing.T) {
	h := testModule(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode spec: %v", err)
	}

	if doc.Info.Title != "Sales API" || doc.Info.Version != "1.0.0" {
		t.Errorf("info = %+v", doc.Info)
	}

	want := map[string]string{
		"/api/getData":            "get",
		"/api/getDistinctProduct": "get",
		"/api/addRecord":          "post",
		"/api/updateRecord":       "post",
		"/api/deleteRecord":       "post",
		"/api/searchData":         "get",
	}
	for path, method := range want {
		ops, ok := doc.Paths[path]
		if !ok {
			t.Errorf("path %s missing", path)
			continue
		}
		if _, ok := ops[method]; !ok {
			t.Errorf("path %s missing %s operation", path, method)
		}
	}
}
