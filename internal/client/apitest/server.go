// Package apitest runs an in-memory booky API for tests. It speaks the same
// routes and payloads as the real server, issues HS256 credentials and
// records every call so tests can assert on what the console sent.
package apitest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/booky/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// Call is one request as the server saw it.
type Call struct {
	Method    string
	Path      string
	Query     url.Values
	RequestID string
	Subject   string
}

type user struct {
	models.AppUser
	password string
}

type failure struct {
	status  int
	message string
}

// Server is a fake API. All methods are safe for concurrent use.
type Server struct {
	srv    *httptest.Server
	secret []byte
	ttl    time.Duration

	mu         sync.Mutex
	users      *collection[user]
	categories *collection[models.Category]
	products   *collection[models.Product]
	orders     *collection[models.Order]
	items      *collection[models.OrderItem]
	calls      []Call
	failNext   *failure
}

type Option func(*Server)

// WithTTL sets the lifetime of issued credentials (default one hour).
func WithTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

// New starts a server that is closed when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		secret:     []byte("apitest-secret"),
		ttl:        time.Hour,
		users:      newCollection(func(u *user) *int64 { return &u.ID }),
		categories: newCollection(func(c *models.Category) *int64 { return &c.ID }),
		products:   newCollection(func(p *models.Product) *int64 { return &p.ID }),
		orders:     newCollection(func(o *models.Order) *int64 { return &o.ID }),
		items:      newCollection(func(i *models.OrderItem) *int64 { return &i.ID }),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.srv = httptest.NewServer(s.router())
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the API base, e.g. "http://127.0.0.1:port/api".
func (s *Server) URL() string {
	return s.srv.URL + "/api"
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.record)
		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/auth/validate", func(w http.ResponseWriter, r *http.Request) {
				respondJSON(w, http.StatusOK, map[string]bool{"valid": true})
			})

			r.Route("/category", func(r chi.Router) {
				r.Get("/", s.listCategories)
				r.Post("/", s.createCategory)
				r.Get("/search", s.searchCategories)
				r.Get("/{id}", s.getCategory)
				r.Put("/{id}", s.updateCategory)
				r.Delete("/{id}", s.deleteCategory)
			})
			r.Route("/product", func(r chi.Router) {
				r.Get("/", s.listProducts)
				r.Post("/", s.createProduct)
				r.Get("/search", s.searchProducts)
				r.Get("/{id}", s.getProduct)
				r.Put("/{id}", s.updateProduct)
				r.Delete("/{id}", s.deleteProduct)
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", s.listOrders)
				r.Post("/", s.createOrder)
				r.Get("/search", s.searchOrders)
				r.Get("/{id}", s.getOrder)
				r.Put("/{id}", s.updateOrder)
				r.Delete("/{id}", s.deleteOrder)
			})
			r.Route("/orderitem", func(r chi.Router) {
				r.Get("/", s.listItems)
				r.Post("/", s.createItem)
				r.Get("/search", s.searchItems)
				r.Get("/order/{orderId}", s.listItemsByOrder)
				r.Get("/{id}", s.getItem)
				r.Put("/{id}", s.updateItem)
				r.Delete("/{id}", s.deleteItem)
			})
		})
	})
	return r
}

// ---- credentials ----

// Token mints a credential for an existing user that expires after ttl
// (negative for an already expired one).
func (s *Server) Token(username string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	u, ok := s.findUser(username)
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("unknown user %q", username)
	}
	return s.sign(u, ttl)
}

func (s *Server) sign(u user, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    u.Username,
		"userId": u.ID,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) verify(raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", errors.New("invalid token")
	}
	return tok.Claims.GetSubject()
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		if _, err := s.verify(strings.TrimPrefix(h, "Bearer ")); err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---- call recording and failure injection ----

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := Call{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.Query(),
			RequestID: middleware.GetReqID(r.Context()),
		}
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			c.Subject, _ = s.verify(strings.TrimPrefix(h, "Bearer "))
		}

		s.mu.Lock()
		s.calls = append(s.calls, c)
		fail := s.failNext
		s.failNext = nil
		s.mu.Unlock()

		if fail != nil {
			respondError(w, fail.status, fail.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Calls returns the requests received so far, oldest first.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// FailNext makes the next request, whatever it is, answer with status and
// a JSON body carrying message (omitted when empty).
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = &failure{status: status, message: message}
}

// ---- seeding ----

// AddUser creates an account directly and returns its id.
func (s *Server) AddUser(username, password, email string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users.insert(user{AppUser: models.AppUser{Username: username, Email: email}, password: password})
	return u.ID
}

func (s *Server) AddCategory(name, description string) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.insert(models.Category{Name: name, Description: description})
}

func (s *Server) AddProduct(name string, categoryID int64, price float64, stock int) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.Product{Name: name, Price: price, StockQuantity: stock}
	if c, ok := s.categories.find(categoryID); ok {
		p.Category = &c
	}
	return s.products.insert(p)
}

// ---- helpers ----

func (s *Server) findUser(username string) (user, bool) {
	for _, u := range s.users.all() {
		if u.Username == username {
			return u, true
		}
	}
	return user{}, false
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	body := map[string]any{
		"status": status,
		"error":  http.StatusText(status),
	}
	if message != "" {
		body["message"] = message
	}
	respondJSON(w, status, body)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Malformed request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func queryID(r *http.Request, name string) (int64, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	return id, err == nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
