package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dmitrijs2005/booky/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	route  string
	query  url.Values
	body   map[string]any
}

// newRecordingAPI mounts every collection route on a chi router and records
// what each call looked like.
func newRecordingAPI(t *testing.T) (*API, *[]recorded) {
	t.Helper()
	var calls []recorded

	reply := func(w http.ResponseWriter, r *http.Request, payload any) {
		rec := recorded{method: r.Method, route: chi.RouteContext(r.Context()).RoutePattern(), query: r.URL.Query()}
		if r.Body != nil && r.ContentLength != 0 {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		calls = append(calls, rec)
		if payload == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, models.AuthResponse{Token: "a.b.c", Username: "alice"})
		})
		r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, models.AuthResponse{Token: "d.e.f", Username: "bob"})
		})
		r.Get("/auth/validate", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, map[string]bool{"valid": true})
		})
		r.Get("/product", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, []models.Product{{ID: 1, Name: "Pen"}, {ID: 2, Name: "Ink"}})
		})
		r.Get("/product/search", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, []models.Product{{ID: 2, Name: "Ink"}})
		})
		r.Get("/product/{id}", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, models.Product{ID: 9, Name: "Pad"})
		})
		r.Post("/product", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, models.Product{ID: 3, Name: "New"})
		})
		r.Put("/product/{id}", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, models.Product{ID: 3, Name: "Renamed"})
		})
		r.Delete("/product/{id}", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, nil)
		})
		r.Get("/orders/search", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, []models.Order{})
		})
		r.Get("/category/search", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, nil)
		})
		r.Get("/orderitem/order/{orderId}", func(w http.ResponseWriter, r *http.Request) {
			reply(w, r, []models.OrderItem{{ID: 5, Quantity: 2}})
		})
		r.Get("/orderitem/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Order item not found"})
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(NewGateway(srv.URL+"/api", staticToken("tok"))), &calls
}

func TestResource_CRUDPaths(t *testing.T) {
	api, calls := newRecordingAPI(t)
	ctx := context.Background()

	list, err := api.Products.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pen", "Ink"}, []string{list[0].Name, list[1].Name}, "API order is kept")

	got, err := api.Products.Details(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)

	created, err := api.Products.Create(ctx, models.ProductInput{Name: "New", Category: models.Ref{ID: 4}, Price: 1.5})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	updated, err := api.Products.Update(ctx, 3, models.ProductInput{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	require.NoError(t, api.Products.Delete(ctx, 3))

	require.Len(t, *calls, 5)
	routes := make([]string, 0, len(*calls))
	for _, c := range *calls {
		routes = append(routes, c.method+" "+c.route)
	}
	assert.Equal(t, []string{
		"GET /api/product",
		"GET /api/product/{id}",
		"POST /api/product",
		"PUT /api/product/{id}",
		"DELETE /api/product/{id}",
	}, routes)

	createBody := (*calls)[2].body
	assert.Equal(t, "New", createBody["name"])
	assert.Equal(t, map[string]any{"id": float64(4)}, createBody["category"])
}

func TestResource_SearchSendsOnlySetFields(t *testing.T) {
	api, calls := newRecordingAPI(t)
	ctx := context.Background()
	cat := int64(4)

	res, err := api.Products.Search(ctx, models.ProductCriteria{Name: "  ink ", CategoryID: &cat})
	require.NoError(t, err)
	require.Len(t, res, 1)

	start := models.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	_, err = api.Orders.Search(ctx, models.OrderCriteria{StartDate: &start})
	require.NoError(t, err)

	require.Len(t, *calls, 2)
	assert.Equal(t, url.Values{"name": {"ink"}, "categoryId": {"4"}}, (*calls)[0].query)
	assert.Equal(t, url.Values{"startDate": {"2024-01-01"}}, (*calls)[1].query)
}

func TestResource_EmptyCriteriaIsLegalAtThisLayer(t *testing.T) {
	api, calls := newRecordingAPI(t)

	res, err := api.Categories.Search(context.Background(), models.CategoryCriteria{})
	require.NoError(t, err)
	assert.NotNil(t, res, "an empty body still yields an empty slice")
	assert.Empty(t, res)
	require.Len(t, *calls, 1)
	assert.Empty(t, (*calls)[0].query)
}

func TestOrderItems_ListByOrder(t *testing.T) {
	api, calls := newRecordingAPI(t)

	items, err := api.OrderItems.ListByOrder(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "/api/orderitem/order/{orderId}", (*calls)[0].route)
}

func TestResource_ErrorsPropagateUnchanged(t *testing.T) {
	api, _ := newRecordingAPI(t)

	_, err := api.OrderItems.Details(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Order item not found", UserMessage(err, "Failed to load order item"))
}

func TestAuth_LoginRegisterValidate(t *testing.T) {
	api, calls := newRecordingAPI(t)
	ctx := context.Background()

	resp, err := api.Auth.Login(ctx, models.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", resp.Token)
	assert.Equal(t, "alice", resp.Username)

	resp, err = api.Auth.Register(ctx, models.RegisterRequest{Username: "bob", Password: "pw", Email: "b@x.io"})
	require.NoError(t, err)
	assert.Equal(t, "d.e.f", resp.Token)

	require.NoError(t, api.Auth.ValidateToken(ctx))

	require.Len(t, *calls, 3)
	assert.Equal(t, "alice", (*calls)[0].body["username"])
	_, hasPhone := (*calls)[1].body["phone"]
	assert.False(t, hasPhone, "optional register fields are omitted when empty")
}
