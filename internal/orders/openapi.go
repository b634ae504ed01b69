package orders

import "github.com/JaimeStill/sales-lab/pkg/openapi"

// spec holds OpenAPI operation definitions for the sales order domain.
type spec struct {
	GetData            *openapi.Operation
	GetDistinctProduct *openapi.Operation
	AddRecord          *openapi.Operation
	UpdateRecord       *openapi.Operation
	DeleteRecord       *openapi.Operation
	SearchData         *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all sales order endpoints.
var Spec = spec{
	GetData: &openapi.Operation{
		Summary:     "List sales orders",
		Description: "Returns every row of the sales order listing, newest first",
		Responses: map[int]*openapi.Response{
			200: arrayResponse("Sales order rows", "SalesOrderRow"),
		},
	},
	GetDistinctProduct: &openapi.Operation{
		Summary:     "List products",
		Description: "Returns distinct products for order forms, ordered by name",
		Responses: map[int]*openapi.Response{
			200: arrayResponse("Product options", "ProductOption"),
		},
	},
	AddRecord: &openapi.Operation{
		Summary:     "Insert sales order",
		Description: "Validates and stores a new sales order",
		RequestBody: openapi.RequestBodyJSON("InsertOrderInput", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Sales order inserted", "Message"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
	UpdateRecord: &openapi.Operation{
		Summary:     "Update sales order",
		Description: "Updates the sales order identified by object_id",
		RequestBody: openapi.RequestBodyJSON("UpdateOrderInput", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Sales order updated", "Message"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
	DeleteRecord: &openapi.Operation{
		Summary:     "Delete sales order",
		Description: "Removes the sales order identified by object_id",
		RequestBody: openapi.RequestBodyJSON("DeleteOrderInput", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Sales order deleted", "Message"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	SearchData: &openapi.Operation{
		Summary:     "Search sales orders",
		Description: "Returns a paginated listing with optional search, filters, and sorting",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search customer, product, country, and status", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("status", "string", "Filter by exact status", false),
			openapi.QueryParam("country", "string", "Filter by exact country", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated sales orders", "SalesOrderPage"),
		},
	},
}

// Schemas returns the sales order domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	maxLen := 255
	minID := 1.0

	text := func(desc string) *openapi.Schema {
		return &openapi.Schema{Type: "string", Description: desc, MaxLength: &maxLen}
	}
	id := func(desc string) *openapi.Schema {
		return &openapi.Schema{Type: "integer", Format: "int64", Description: desc, Minimum: &minID}
	}
	date := func(desc string) *openapi.Schema {
		return &openapi.Schema{Type: "string", Format: "date-time", Description: desc}
	}

	return map[string]*openapi.Schema{
		"SalesOrderRow": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"object_id":     id("Sales order id"),
				"customer_name": text("Customer name"),
				"status":        text("Order status"),
				"name":          text("Product name"),
				"country":       text("Country"),
				"created_date":  date("Creation timestamp"),
			},
		},
		"ProductOption": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"object_id": id("Product id"),
				"name":      text("Product name"),
			},
		},
		"InsertOrderInput": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"customer_name": text("Customer name"),
				"status":        text("Order status"),
				"category":      id("Product object_id"),
				"country":       text("Country"),
				"created_date":  date("Creation timestamp"),
			},
			Required: []string{"customer_name", "status", "category", "country", "created_date"},
		},
		"UpdateOrderInput": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"object_id":     id("Sales order id"),
				"customer_name": text("Customer name"),
				"status":        text("Order status"),
				"category":      id("Product object_id"),
				"country":       text("Country"),
				"updated_date":  date("Update timestamp"),
			},
			Required: []string{"object_id", "customer_name", "status", "category", "country", "updated_date"},
		},
		"DeleteOrderInput": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"object_id": id("Sales order id"),
			},
			Required: []string{"object_id"},
		},
		"Message": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message":   {Type: "string"},
				"object_id": {Type: "integer", Format: "int64"},
			},
			Required: []string{"message"},
		},
		"SalesOrderPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("SalesOrderRow")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}

func arrayResponse(description, schemaName string) *openapi.Response {
	return &openapi.Response{
		Description: description,
		Content: map[string]*openapi.MediaType{
			"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef(schemaName)}},
		},
	}
}
