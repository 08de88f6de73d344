package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/booky/internal/client/models"
)

// Query is implemented by search criteria: Values holds only the fields
// that are set.
type Query interface {
	Values() url.Values
}

// Resource is the typed CRUD + search surface of one API collection.
// T is the record type, I the create/update payload, C the search criteria.
// It only builds paths and queries; errors come from the Gateway unchanged.
type Resource[T any, I any, C Query] struct {
	gw   *Gateway
	path string
}

func NewResource[T any, I any, C Query](gw *Gateway, path string) *Resource[T, I, C] {
	return &Resource[T, I, C]{gw: gw, path: path}
}

func (r *Resource[T, I, C]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func (r *Resource[T, I, C]) List(ctx context.Context) ([]T, error) {
	return r.getList(ctx, r.path, nil)
}

func (r *Resource[T, I, C]) Details(ctx context.Context, id int64) (T, error) {
	var out T
	err := r.gw.Get(ctx, r.itemPath(id), nil, &out)
	return out, err
}

func (r *Resource[T, I, C]) Create(ctx context.Context, in I) (T, error) {
	var out T
	err := r.gw.Post(ctx, r.path, in, &out)
	return out, err
}

func (r *Resource[T, I, C]) Update(ctx context.Context, id int64, in I) (T, error) {
	var out T
	err := r.gw.Put(ctx, r.itemPath(id), in, &out)
	return out, err
}

func (r *Resource[T, I, C]) Delete(ctx context.Context, id int64) error {
	return r.gw.Delete(ctx, r.itemPath(id))
}

// Search sends only the set criteria fields. Empty criteria are legal here
// and produce a bare /search call.
func (r *Resource[T, I, C]) Search(ctx context.Context, c C) ([]T, error) {
	return r.getList(ctx, r.path+"/search", c.Values())
}

func (r *Resource[T, I, C]) getList(ctx context.Context, path string, query url.Values) ([]T, error) {
	out := make([]T, 0)
	if err := r.gw.Get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = make([]T, 0)
	}
	return out, nil
}

// API collection paths, relative to the gateway base URL.
const (
	OrdersPath     = "/orders"
	ProductsPath   = "/product"
	CategoriesPath = "/category"
	OrderItemsPath = "/orderitem"
)

type (
	Orders     = Resource[models.Order, models.OrderInput, models.OrderCriteria]
	Products   = Resource[models.Product, models.ProductInput, models.ProductCriteria]
	Categories = Resource[models.Category, models.CategoryInput, models.CategoryCriteria]
)

// OrderItems adds the per-order listing to the generic resource.
type OrderItems struct {
	*Resource[models.OrderItem, models.OrderItemInput, models.OrderItemCriteria]
}

// ListByOrder returns the items of one order.
func (r *OrderItems) ListByOrder(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	return r.getList(ctx, r.path+"/order/"+strconv.FormatInt(orderID, 10), nil)
}
