package client

import (
	"context"

	"github.com/dmitrijs2005/booky/internal/client/models"
)

// AuthAPI is the authentication contract the services depend on.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	ValidateToken(ctx context.Context) error
}

var _ AuthAPI = (*Auth)(nil)

// API groups one client per remote collection, all sharing a Gateway.
type API struct {
	Auth       *Auth
	Orders     *Orders
	Products   *Products
	Categories *Categories
	OrderItems *OrderItems
}

func New(gw *Gateway) *API {
	return &API{
		Auth:       &Auth{gw: gw},
		Orders:     NewResource[models.Order, models.OrderInput, models.OrderCriteria](gw, OrdersPath),
		Products:   NewResource[models.Product, models.ProductInput, models.ProductCriteria](gw, ProductsPath),
		Categories: NewResource[models.Category, models.CategoryInput, models.CategoryCriteria](gw, CategoriesPath),
		OrderItems: &OrderItems{
			Resource: NewResource[models.OrderItem, models.OrderItemInput, models.OrderItemCriteria](gw, OrderItemsPath),
		},
	}
}
