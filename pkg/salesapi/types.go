package salesapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxFieldLength bounds free-text input fields.
const MaxFieldLength = 255

// SalesOrderRow is one row of the sales order listing.
type SalesOrderRow struct {
	ObjectID     int64     `json:"object_id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	Name         string    `json:"name"`
	Country      string    `json:"country"`
	CreatedDate  time.Time `json:"created_date"`
}

// ProductOption is a selectable product for order forms.
type ProductOption struct {
	ObjectID int64  `json:"object_id"`
	Name     string `json:"name"`
}

// InsertOrderInput is the payload for creating a sales order.
// Category references ProductOption.ObjectID.
type InsertOrderInput struct {
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	Category     int64     `json:"category"`
	Country      string    `json:"country"`
	CreatedDate  time.Time `json:"created_date"`
}

// Validate checks required fields without modifying them.
func (in InsertOrderInput) Validate() error {
	if err := validateText(in.CustomerName, in.Status, in.Country); err != nil {
		return err
	}
	if in.Category <= 0 {
		return fmt.Errorf("%w: category must be positive", ErrInvalidInput)
	}
	if in.CreatedDate.IsZero() {
		return fmt.Errorf("%w: created_date required", ErrInvalidInput)
	}
	return nil
}

// UpdateOrderInput is the payload for updating the sales order identified by ObjectID.
type UpdateOrderInput struct {
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	Category     int64     `json:"category"`
	Country      string    `json:"country"`
	UpdatedDate  time.Time `json:"updated_date"`
	ObjectID     int64     `json:"object_id"`
}

// Validate checks required fields without modifying them.
func (in UpdateOrderInput) Validate() error {
	if in.ObjectID <= 0 {
		return fmt.Errorf("%w: object_id must be positive", ErrInvalidInput)
	}
	if err := validateText(in.CustomerName, in.Status, in.Country); err != nil {
		return err
	}
	if in.Category <= 0 {
		return fmt.Errorf("%w: category must be positive", ErrInvalidInput)
	}
	if in.UpdatedDate.IsZero() {
		return fmt.Errorf("%w: updated_date required", ErrInvalidInput)
	}
	return nil
}

// DeleteOrderInput identifies the sales order to delete.
type DeleteOrderInput struct {
	ObjectID int64 `json:"object_id"`
}

// Validate checks the object id.
func (in DeleteOrderInput) Validate() error {
	if in.ObjectID <= 0 {
		return fmt.Errorf("%w: object_id must be positive", ErrInvalidInput)
	}
	return nil
}

// Message is the acknowledgement returned by write operations.
type Message struct {
	Message  string `json:"message"`
	ObjectID int64  `json:"object_id,omitempty"`
}

// PageRequest selects a page of the sales order listing.
// Zero values are omitted from the query string and defaulted by the server.
type PageRequest struct {
	Page     int
	PageSize int
	Search   string
	Sort     string
	Status   string
	Country  string
}

// Query encodes the request as URL query parameters.
func (p PageRequest) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Country != "" {
		q.Set("country", p.Country)
	}
	return q
}

// OrderPage is one page of sales order rows.
type OrderPage struct {
	Data       []SalesOrderRow `json:"data"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

func validateText(customerName, status, country string) error {
	fields := []struct {
		name  string
		value string
	}{
		{"customer_name", customerName},
		{"status", status},
		{"country", country},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s required", ErrInvalidInput, f.name)
		}
		if utf8.RuneCountInString(f.value) > MaxFieldLength {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, f.name, MaxFieldLength)
		}
	}
	return nil
}
