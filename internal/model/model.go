package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID              uuid.UUID
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Role            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Images      []string
	Colors      []string
	Sizes       []string
	Stock       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CartItem is a user's persisted selection. Carts have no row of their own.
type CartItem struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
	SelectedColor string
	SelectedSize  string
	CreatedAt     time.Time
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderItem is a snapshot of the product taken when the order was placed.
// It is stored inside the order and never joined back to products.
type OrderItem struct {
	ProductID     uuid.UUID       `json:"productId"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	SelectedColor string          `json:"selectedColor"`
	SelectedSize  string          `json:"selectedSize"`
	Image         string          `json:"image,omitempty"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Status        OrderStatus
	PaymentMethod string
	PaymentStatus string
	Total         decimal.Decimal
	CustomerInfo  CustomerInfo
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ItemsTotal sums price*quantity over the snapshot items.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

type OrderStatusChange struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	FromStatus OrderStatus
	ToStatus   OrderStatus
	ChangedAt  time.Time
}

const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
)

type OrderMessage struct {
	Event      string      `json:"event"`
	OrderID    uuid.UUID   `json:"order_id"`
	UserID     uuid.UUID   `json:"user_id"`
	FromStatus OrderStatus `json:"from_status,omitempty"`
	ToStatus   OrderStatus `json:"to_status"`
	OccurredAt time.Time   `json:"occurred_at"`
}
