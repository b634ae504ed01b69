package orders

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/sales-lab/pkg/handlers"
	"github.com/JaimeStill/sales-lab/pkg/salesapi"
)

// Domain errors for sales order operations.
var (
	ErrNotFound       = errors.New("sales order not found")
	ErrDuplicate      = errors.New("sales order already exists")
	ErrUnknownProduct = errors.New("unknown product category")
	ErrInvalidOrder   = fmt.Errorf("invalid sales order: %w", salesapi.ErrInvalidInput)
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidOrder) || errors.Is(err, ErrUnknownProduct) {
		return http.StatusBadRequest
	}
	if errors.Is(err, handlers.ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
