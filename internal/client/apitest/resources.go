package apitest

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/booky/internal/client/models"
)

// ---- categories ----

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.categories.all())
}

func (s *Server) searchCategories(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("searchTerm"))

	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.categories.filter(func(c models.Category) bool {
		return containsFold(c.Name, term) || containsFold(c.Description, term)
	}))
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, found := s.categories.find(id); found {
		respondJSON(w, http.StatusOK, c)
		return
	}
	respondError(w, http.StatusNotFound, "Category not found")
}

func (s *Server) categoryFromInput(w http.ResponseWriter, r *http.Request) (models.Category, bool) {
	var in models.CategoryInput
	if !decode(w, r, &in) {
		return models.Category{}, false
	}
	if strings.TrimSpace(in.Name) == "" {
		respondError(w, http.StatusBadRequest, "Category name is required")
		return models.Category{}, false
	}
	return models.Category{Name: in.Name, Description: in.Description}, true
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := s.categoryFromInput(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusCreated, s.categories.insert(c))
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, ok := s.categoryFromInput(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if updated, found := s.categories.replace(id, c); found {
		respondJSON(w, http.StatusOK, updated)
		return
	}
	respondError(w, http.StatusNotFound, "Category not found")
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inUse := s.products.filter(func(p models.Product) bool { return p.Category != nil && p.Category.ID == id })
	if len(inUse) > 0 {
		respondError(w, http.StatusConflict, "Category is used by existing products")
		return
	}
	if !s.categories.remove(id) {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- products ----

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.products.all())
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	categoryID, byCategory := queryID(r, "categoryId")

	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.products.filter(func(p models.Product) bool {
		if name != "" && !containsFold(p.Name, name) {
			return false
		}
		if byCategory && (p.Category == nil || p.Category.ID != categoryID) {
			return false
		}
		return true
	}))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, found := s.products.find(id); found {
		respondJSON(w, http.StatusOK, p)
		return
	}
	respondError(w, http.StatusNotFound, "Product not found")
}

// productFromInput must be called with s.mu held.
func (s *Server) productFromInput(w http.ResponseWriter, in models.ProductInput) (models.Product, bool) {
	if strings.TrimSpace(in.Name) == "" {
		respondError(w, http.StatusBadRequest, "Product name is required")
		return models.Product{}, false
	}
	if in.Price < 0 || in.StockQuantity < 0 {
		respondError(w, http.StatusBadRequest, "Price and stock must not be negative")
		return models.Product{}, false
	}
	c, found := s.categories.find(in.Category.ID)
	if !found {
		respondError(w, http.StatusBadRequest, "Category not found")
		return models.Product{}, false
	}
	return models.Product{
		Name:          in.Name,
		Category:      &c,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Description:   in.Description,
	}, true
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.productFromInput(w, in)
	if !ok {
		return
	}
	respondJSON(w, http.StatusCreated, s.products.insert(p))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.ProductInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.productFromInput(w, in)
	if !ok {
		return
	}
	if updated, found := s.products.replace(id, p); found {
		respondJSON(w, http.StatusOK, updated)
		return
	}
	respondError(w, http.StatusNotFound, "Product not found")
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.products.remove(id) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- orders ----

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.orders.all())
}

func (s *Server) searchOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	username := strings.TrimSpace(q.Get("username"))
	start, errStart := models.ParseDate(q.Get("startDate"))
	end, errEnd := models.ParseDate(q.Get("endDate"))

	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.orders.filter(func(o models.Order) bool {
		if username != "" && (o.AppUser == nil || !strings.EqualFold(o.AppUser.Username, username)) {
			return false
		}
		if errStart == nil && o.OrderDate.Before(start.Time) {
			return false
		}
		if errEnd == nil && o.OrderDate.After(end.Time) {
			return false
		}
		return true
	}))
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, found := s.orders.find(id); found {
		respondJSON(w, http.StatusOK, o)
		return
	}
	respondError(w, http.StatusNotFound, "Order not found")
}

// orderFromInput must be called with s.mu held.
func (s *Server) orderFromInput(w http.ResponseWriter, in models.OrderInput) (models.Order, bool) {
	u, found := s.users.find(in.AppUser.ID)
	if !found {
		respondError(w, http.StatusBadRequest, "User not found")
		return models.Order{}, false
	}
	if in.OrderDate.IsZero() {
		respondError(w, http.StatusBadRequest, "Order date is required")
		return models.Order{}, false
	}
	owner := u.AppUser
	return models.Order{AppUser: &owner, OrderDate: in.OrderDate, TotalAmount: in.TotalAmount}, true
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var in models.OrderInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orderFromInput(w, in)
	if !ok {
		return
	}
	respondJSON(w, http.StatusCreated, s.orders.insert(o))
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.OrderInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orderFromInput(w, in)
	if !ok {
		return
	}
	if updated, found := s.orders.replace(id, o); found {
		respondJSON(w, http.StatusOK, updated)
		return
	}
	respondError(w, http.StatusNotFound, "Order not found")
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.orders.remove(id) {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	for _, it := range s.items.filter(func(it models.OrderItem) bool { return it.Order != nil && it.Order.ID == id }) {
		s.items.remove(it.ID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- order items ----

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.items.all())
}

func (s *Server) listItemsByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "orderId")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.items.filter(func(it models.OrderItem) bool {
		return it.Order != nil && it.Order.ID == orderID
	}))
}

func (s *Server) searchItems(w http.ResponseWriter, r *http.Request) {
	productName := strings.TrimSpace(r.URL.Query().Get("productName"))
	orderID, byOrder := queryID(r, "orderId")

	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.items.filter(func(it models.OrderItem) bool {
		if productName != "" && (it.Product == nil || !containsFold(it.Product.Name, productName)) {
			return false
		}
		if byOrder && (it.Order == nil || it.Order.ID != orderID) {
			return false
		}
		return true
	}))
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if it, found := s.items.find(id); found {
		respondJSON(w, http.StatusOK, it)
		return
	}
	respondError(w, http.StatusNotFound, "Order item not found")
}

// itemFromInput must be called with s.mu held.
func (s *Server) itemFromInput(w http.ResponseWriter, in models.OrderItemInput) (models.OrderItem, bool) {
	o, found := s.orders.find(in.OrderID)
	if !found {
		respondError(w, http.StatusBadRequest, "Order not found")
		return models.OrderItem{}, false
	}
	p, found := s.products.find(in.ProductID)
	if !found {
		respondError(w, http.StatusBadRequest, "Product not found")
		return models.OrderItem{}, false
	}
	if in.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "Quantity must be positive")
		return models.OrderItem{}, false
	}
	return models.OrderItem{Order: &o, Product: &p, Quantity: in.Quantity, PriceAtPurchase: in.PriceAtPurchase}, true
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var in models.OrderItemInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.itemFromInput(w, in)
	if !ok {
		return
	}
	respondJSON(w, http.StatusCreated, s.items.insert(it))
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.OrderItemInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.itemFromInput(w, in)
	if !ok {
		return
	}
	if updated, found := s.items.replace(id, it); found {
		respondJSON(w, http.StatusOK, updated)
		return
	}
	respondError(w, http.StatusNotFound, "Order item not found")
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.items.remove(id) {
		respondError(w, http.StatusNotFound, "Order item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
