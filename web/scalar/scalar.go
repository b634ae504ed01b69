// Package scalar serves the interactive API reference page using Scalar UI.
// The page loads the generated OpenAPI document from the API module.
package scalar

import (
	"bytes"
	_ "embed"
	"net/http"

	"github.com/JaimeStill/sales-lab/pkg/module"
)

//go:embed index.html
var indexHTML []byte

const specURLToken = "{{SPEC_URL}}"

// Handler returns a handler that writes the Scalar page pointed at specURL.
func Handler(specURL string) http.HandlerFunc {
	page := bytes.ReplaceAll(indexHTML, []byte(specURLToken), []byte(specURL))

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(page)
	}
}

// NewModule mounts the Scalar page at /scalar.
func NewModule(specURL string) *module.Module {
	return module.New("/scalar", Handler(specURL))
}
