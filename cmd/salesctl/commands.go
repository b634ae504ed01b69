package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/JaimeStill/sales-lab/pkg/salesapi"
)

// ErrUnknownCommand indicates the first argument names no command.
var ErrUnknownCommand = errors.New("unknown command")

const dateLayout = "2006-01-02"

type command struct {
	name        string
	description string
	run         func(ctx context.Context, svc salesapi.Service, args []string) (any, error)
}

var commands = []command{
	{"list", "List all sales orders", runList},
	{"products", "List distinct products", runProducts},
	{"search", "Search sales orders with paging", runSearch},
	{"insert", "Create a sales order", runInsert},
	{"update", "Update a sales order", runUpdate},
	{"delete", "Delete a sales order", runDelete},
}

// run dispatches args[0] to its command and writes the result to out as indented JSON.
func run(ctx context.Context, svc salesapi.Service, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: none given", ErrUnknownCommand)
	}

	for _, c := range commands {
		if c.name != args[0] {
			continue
		}

		result, err := c.run(ctx, svc, args[1:])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
}

func runList(ctx context.Context, svc salesapi.Service, args []string) (any, error) {
	if err := newFlagSet("list").Parse(args); err != nil {
		return nil, err
	}
	return svc.ListOrders(ctx)
}

func runProducts(ctx context.Context, svc salesapi.Service, args []string) (any, error) {
	if err := newFlagSet("products").Parse(args); err != nil {
		return nil, err
	}
	return svc.ListProducts(ctx)
}

func runSearch(ctx context.Context, svc salesapi.Service, args []string) (any, error) {
	var page salesapi.PageRequest

	fs := newFlagSet("search")
	fs.IntVar(&page.Page, "page", 0, "Page number (1-based)")
	fs.IntVar(&page.PageSize, "page-size", 0, "Rows per page")
	fs.StringVar(&page.Search, "search", "", "Match customer, product, country, or status")
	fs.StringVar(&page.Sort, "sort", "", "Sort fields, e.g. -created_date,customer_name")
	fs.StringVar(&page.Status, "status", "", "Exact status filter")
	fs.StringVar(&page.Country, "country", "", "Exact country filter")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return svc.SearchOrders(ctx, page)
}

type orderFlags struct {
	customer string
	status   string
	category int64
	country  string
	date     string
}

func (o *orderFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.customer, "customer", "", "Customer name")
	fs.StringVar(&o.status, "status", "", "Order status")
	fs.Int64Var(&o.category, "category", 0, "Product object_id")
	fs.StringVar(&o.country, "country", "", "Country")
	fs.StringVar(&o.date, "date", "", "Date as YYYY-MM-DD (default today, UTC)")
}

func (o *orderFlags) parseDate() (time.Time, error) {
	if o.date == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(dateLayout, o.date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", salesapi.ErrInvalidInput)
	}
	return t, nil
}

func runInsert(ctx context.Context, svc salesapi.Service, args []string) (any, error) {
	var o orderFlags
	fs := newFlagSet("insert")
	o.bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	date, err := o.parseDate()
	if err != nil {
		return nil, err
	}

	return svc.InsertOrder(ctx, salesapi.InsertOrderInput{
		CustomerName: o.customer,
		Status:       o.status,
		Category:     o.category,
		Country:      o.country,
		CreatedDate:  date,
	})
}

func runUpdate(ctx context.Context, svc salesapi.Service, args []string) (any, error) {
	var (
		o  orderFlags
		id int64
	)
	fs := newFlagSet("update")
	o.bind(fs)
	fs.Int64Var(&id, "id", 0, "Sales order object_id")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	date, err := o.parseDate()
	if err != nil {
		return nil, err
	}

	return svc.UpdateOrder(ctx, salesapi.UpdateOrderInput{
		CustomerName: o.customer,
		Status:       o.status,
		Category:     o.category,
		Country:      o.country,
		UpdatedDate:  date,
		ObjectID:     id,
	})
}

func runDelete(ctx context.Context, svc salesapi.Service, args []string) (any, error) {
	var id int64
	fs := newFlagSet("delete")
	fs.Int64Var(&id, "id", 0, "Sales order object_id")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return svc.DeleteOrder(ctx, salesapi.DeleteOrderInput{ObjectID: id})
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}
