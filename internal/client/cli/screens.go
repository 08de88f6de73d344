package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/booky/internal/client/client"
	"github.com/dmitrijs2005/booky/internal/client/events"
	"github.com/dmitrijs2005/booky/internal/client/models"
	"github.com/dmitrijs2005/booky/internal/client/view"
)

func (a *App) buildScreens(bus *events.Bus) map[string]screen {
	base := []view.Option{
		view.WithBus(bus),
		view.WithLogger(a.log),
		view.WithNotifier(printNotifier{w: a.out}),
	}
	opts := func(extra ...view.Option) []view.Option {
		return append(append([]view.Option(nil), base...), extra...)
	}

	return map[string]screen{
		"categories": a.categoriesScreen(opts()),
		"products":   a.productsScreen(opts(view.DependsOn(models.KindCategories))),
		"orders":     a.ordersScreen(opts(view.DependsOn(models.KindOrderItems))),
		"items":      a.itemsScreen(opts(view.DependsOn(models.KindOrders, models.KindProducts))),
	}
}

// ---- categories ----

func (a *App) categoriesScreen(opts []view.Option) screen {
	return &resourceScreen[models.Category, models.CategoryInput, models.CategoryCriteria]{
		sync:   view.New[models.Category, models.CategoryInput, models.CategoryCriteria](models.KindCategories, a.api.Categories, opts...),
		reader: a.reader,
		out:    a.out,
		input: func(context.Context) (models.CategoryInput, error) {
			var in models.CategoryInput
			var err error
			if in.Name, err = getSimpleText(a.reader, "Category name", a.out); err != nil {
				return in, err
			}
			in.Description, err = GetMultiline(a.reader, "Description", a.out)
			return in, err
		},
		criteria: func() (models.CategoryCriteria, error) {
			term, err := getSimpleText(a.reader, "Search term (name or description)", a.out)
			return models.CategoryCriteria{SearchTerm: term}, err
		},
		describe: func(c models.CategoryCriteria) string {
			return fmt.Sprintf("%q", c.SearchTerm)
		},
		row: formatCategory,
	}
}

func formatCategory(c models.Category) string {
	if c.Description == "" {
		return fmt.Sprintf("#%d %s", c.ID, c.Name)
	}
	return fmt.Sprintf("#%d %s: %s", c.ID, c.Name, c.Description)
}

// ---- products ----

func (a *App) productsScreen(opts []view.Option) screen {
	return &resourceScreen[models.Product, models.ProductInput, models.ProductCriteria]{
		sync:   view.New[models.Product, models.ProductInput, models.ProductCriteria](models.KindProducts, a.api.Products, opts...),
		reader: a.reader,
		out:    a.out,
		input: func(context.Context) (models.ProductInput, error) {
			var in models.ProductInput
			var err error
			if in.Name, err = getSimpleText(a.reader, "Product name", a.out); err != nil {
				return in, err
			}
			categoryID, err := GetInt64(a.reader, "Category id", a.out, false)
			if err != nil {
				return in, err
			}
			in.Category = models.Ref{ID: *categoryID}
			if in.Price, err = GetFloat(a.reader, "Price", a.out); err != nil {
				return in, err
			}
			stock, err := GetInt64(a.reader, "Stock quantity", a.out, false)
			if err != nil {
				return in, err
			}
			in.StockQuantity = int(*stock)
			in.Description, err = GetMultiline(a.reader, "Description", a.out)
			return in, err
		},
		criteria: func() (models.ProductCriteria, error) {
			var c models.ProductCriteria
			var err error
			if c.Name, err = getSimpleText(a.reader, "Name contains (optional)", a.out); err != nil {
				return c, err
			}
			c.CategoryID, err = GetInt64(a.reader, "Category id (optional)", a.out, true)
			return c, err
		},
		describe: func(c models.ProductCriteria) string {
			return describeValues(c.Values())
		},
		row: formatProduct,
	}
}

func formatProduct(p models.Product) string {
	category := "-"
	if p.Category != nil {
		category = p.Category.Name
	}
	return fmt.Sprintf("#%d %s, %.2f, stock %d, category %s", p.ID, p.Name, p.Price, p.StockQuantity, category)
}

// ---- orders ----

func (a *App) ordersScreen(opts []view.Option) screen {
	return &resourceScreen[models.Order, models.OrderInput, models.OrderCriteria]{
		sync:   view.New[models.Order, models.OrderInput, models.OrderCriteria](models.KindOrders, a.api.Orders, opts...),
		reader: a.reader,
		out:    a.out,
		input: func(ctx context.Context) (models.OrderInput, error) {
			var in models.OrderInput
			if u := a.authService.CurrentUser(ctx); u != nil {
				in.AppUser = models.Ref{ID: u.UserID}
			}
			var err error
			if in.OrderDate, err = GetDate(a.reader, "Order date, empty for today", a.out); err != nil {
				return in, err
			}
			if in.OrderDate.IsZero() {
				in.OrderDate = models.NewDate(time.Now())
			}
			in.TotalAmount, err = GetFloat(a.reader, "Total amount", a.out)
			return in, err
		},
		criteria: func() (models.OrderCriteria, error) {
			var c models.OrderCriteria
			var err error
			if c.Username, err = getSimpleText(a.reader, "Username (optional)", a.out); err != nil {
				return c, err
			}
			start, err := GetDate(a.reader, "From date (optional)", a.out)
			if err != nil {
				return c, err
			}
			end, err := GetDate(a.reader, "To date (optional)", a.out)
			if err != nil {
				return c, err
			}
			if !start.IsZero() {
				c.StartDate = &start
			}
			if !end.IsZero() {
				c.EndDate = &end
			}
			return c, nil
		},
		describe: func(c models.OrderCriteria) string {
			return describeValues(c.Values())
		},
		row: formatOrder,
	}
}

func formatOrder(o models.Order) string {
	owner := "-"
	if o.AppUser != nil {
		owner = o.AppUser.Username
	}
	return fmt.Sprintf("#%d %s by %s, total %.2f", o.ID, o.OrderDate, owner, o.TotalAmount)
}

// ---- order items ----

func (a *App) itemsScreen(opts []view.Option) screen {
	s := &resourceScreen[models.OrderItem, models.OrderItemInput, models.OrderItemCriteria]{
		sync:   view.New[models.OrderItem, models.OrderItemInput, models.OrderItemCriteria](models.KindOrderItems, a.api.OrderItems, opts...),
		reader: a.reader,
		out:    a.out,
		input: func(context.Context) (models.OrderItemInput, error) {
			var in models.OrderItemInput
			orderID, err := GetInt64(a.reader, "Order id", a.out, false)
			if err != nil {
				return in, err
			}
			productID, err := GetInt64(a.reader, "Product id", a.out, false)
			if err != nil {
				return in, err
			}
			quantity, err := GetInt64(a.reader, "Quantity", a.out, false)
			if err != nil {
				return in, err
			}
			in.OrderID, in.ProductID, in.Quantity = *orderID, *productID, int(*quantity)
			in.PriceAtPurchase, err = GetFloat(a.reader, "Price at purchase", a.out)
			return in, err
		},
		criteria: func() (models.OrderItemCriteria, error) {
			var c models.OrderItemCriteria
			var err error
			if c.ProductName, err = getSimpleText(a.reader, "Product name contains (optional)", a.out); err != nil {
				return c, err
			}
			c.OrderID, err = GetInt64(a.reader, "Order id (optional)", a.out, true)
			return c, err
		},
		describe: func(c models.OrderItemCriteria) string {
			return describeValues(c.Values())
		},
		row: formatOrderItem,
	}

	s.extra = map[string]func(context.Context, []string) error{
		// order <id> lists the items of one order without changing the view.
		"order": func(ctx context.Context, args []string) error {
			id, err := s.id(args)
			if err != nil {
				return err
			}
			items, err := a.api.OrderItems.ListByOrder(ctx, id)
			if err != nil {
				printNotifier{w: a.out}.Error(client.UserMessage(err, "Failed to load order items"))
				return err
			}
			fmt.Fprintf(a.out, "order #%d: %d item(s)\n", id, len(items))
			for _, it := range items {
				fmt.Fprintln(a.out, "  "+formatOrderItem(it))
			}
			return nil
		},
	}
	return s
}

func formatOrderItem(it models.OrderItem) string {
	var orderID int64
	if it.Order != nil {
		orderID = it.Order.ID
	}
	product := "-"
	if it.Product != nil {
		product = it.Product.Name
	}
	return fmt.Sprintf("#%d order #%d, %s x%d at %.2f", it.ID, orderID, product, it.Quantity, it.PriceAtPurchase)
}

// describeValues renders criteria as k=v pairs in a stable order.
func describeValues(v map[string][]string) string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strings.Join(v[k], ","))
	}
	return strings.Join(parts, " ")
}
