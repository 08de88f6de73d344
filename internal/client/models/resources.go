package models

// Kind names a resource type managed by the console.
type Kind string

const (
	KindOrders     Kind = "orders"
	KindProducts   Kind = "products"
	KindCategories Kind = "categories"
	KindOrderItems Kind = "order items"
)

// Singular returns the human-readable singular name, e.g. "order item".
func (k Kind) Singular() string {
	switch k {
	case KindOrders:
		return "order"
	case KindProducts:
		return "product"
	case KindCategories:
		return "category"
	case KindOrderItems:
		return "order item"
	default:
		return string(k)
	}
}

// Ref points at another record by identity only.
type Ref struct {
	ID int64 `json:"id"`
}

// AppUser owns orders. Read-only from the console's point of view.
type AppUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Category groups products. ID 0 means "not yet created".
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryInput is the create/update payload of a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Category      *Category `json:"category,omitempty"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	Description   string    `json:"description"`
}

// ProductInput is the create/update payload of a product.
type ProductInput struct {
	Name          string  `json:"name"`
	Category      Ref     `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	Description   string  `json:"description"`
}

// Order is a purchase order placed by an AppUser.
type Order struct {
	ID          int64    `json:"id"`
	AppUser     *AppUser `json:"appUser,omitempty"`
	OrderDate   Date     `json:"orderDate"`
	TotalAmount float64  `json:"totalAmount"`
}

// OrderInput is the create/update payload of an order. AppUser is
// normally the signed-in user's id taken from the session.
type OrderInput struct {
	AppUser     Ref     `json:"appUser"`
	OrderDate   Date    `json:"orderDate"`
	TotalAmount float64 `json:"totalAmount"`
}

// OrderItem is one product line of an order.
type OrderItem struct {
	ID              int64    `json:"id"`
	Order           *Order   `json:"order,omitempty"`
	Product         *Product `json:"product,omitempty"`
	Quantity        int      `json:"quantity"`
	PriceAtPurchase float64  `json:"priceAtPurchase"`
}

// OrderItemInput is the create/update payload of an order item.
type OrderItemInput struct {
	OrderID         int64   `json:"orderId"`
	ProductID       int64   `json:"productId"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}
