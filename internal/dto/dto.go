package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/laramoda/storefront-api/internal/model"
)

// --- User ---

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL string    `json:"profileImageUrl"`
	Role            string    `json:"role"`
}

// --- Product ---

// CreateProductRequest is bound from a multipart form; image files are read
// separately from the "images" parts.
type CreateProductRequest struct {
	Name        string   `form:"name" binding:"required,notblank"`
	Description string   `form:"description" binding:"required,min_trimmed=10"`
	Price       string   `form:"price" binding:"required,decimal_gt0"`
	Category    string   `form:"category" binding:"required,category"`
	Colors      []string `form:"colors" binding:"required,min=1,dive,notblank"`
	Sizes       []string `form:"sizes" binding:"required,min=1,dive,notblank"`
	Stock       int      `form:"stock" binding:"min=0"`
	IsActive    *bool    `form:"isActive"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitnil,notblank"`
	Description *string  `json:"description" binding:"omitnil,min_trimmed=10"`
	Price       *string  `json:"price" binding:"omitnil,decimal_gt0"`
	Category    *string  `json:"category" binding:"omitnil,category"`
	Images      []string `json:"images" binding:"omitnil,min=1,dive,notblank"`
	Colors      []string `json:"colors" binding:"omitnil,min=1,dive,notblank"`
	Sizes       []string `json:"sizes" binding:"omitnil,min=1,dive,notblank"`
	Stock       *int     `json:"stock" binding:"omitnil,min=0"`
	IsActive    *bool    `json:"isActive"`
}

type ListProductsRequest struct {
	Search   string `form:"search"`
	Category string `form:"category,default=all"`
	Sort     string `form:"sort,default=name" binding:"sort_key"`
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Colors      []string  `json:"colors"`
	Sizes       []string  `json:"sizes"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// --- Checkout ---

type WhatsAppInquiryRequest struct {
	Color    string `form:"color"`
	Size     string `form:"size"`
	Quantity int    `form:"quantity,default=1" binding:"min=1,max=99"`
}

type WhatsAppLinkResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID     uuid.UUID `json:"productId" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	SelectedColor string    `json:"selectedColor" binding:"required,notblank"`
	SelectedSize  string    `json:"selectedSize" binding:"required,notblank"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type CartItemResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"productId"`
	Quantity      int       `json:"quantity"`
	SelectedColor string    `json:"selectedColor"`
	SelectedSize  string    `json:"selectedSize"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
}

// --- Order ---

type CustomerInfoRequest struct {
	Name  string `json:"name" binding:"required,notblank"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required,notblank"`
}

type OrderItemRequest struct {
	ProductID     uuid.UUID `json:"productId" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	SelectedColor string    `json:"selectedColor"`
	SelectedSize  string    `json:"selectedSize"`
}

type CreateOrderRequest struct {
	PaymentMethod string              `json:"paymentMethod" binding:"omitempty,payment_method"`
	CustomerInfo  CustomerInfoRequest `json:"customerInfo" binding:"required"`
	Items         []OrderItemRequest  `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required,order_status"`
}

type OrderItemResponse struct {
	ProductID     uuid.UUID `json:"productId"`
	Name          string    `json:"name"`
	Price         string    `json:"price"`
	Quantity      int       `json:"quantity"`
	SelectedColor string    `json:"selectedColor"`
	SelectedSize  string    `json:"selectedSize"`
	Image         string    `json:"image,omitempty"`
}

type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"userId"`
	Status        model.OrderStatus   `json:"status"`
	PaymentMethod string              `json:"paymentMethod"`
	PaymentStatus string              `json:"paymentStatus"`
	Total         string              `json:"total"`
	CustomerInfo  model.CustomerInfo  `json:"customerInfo"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type CreateOrderResponse struct {
	Order       OrderResponse `json:"order"`
	WhatsAppURL string        `json:"whatsappUrl"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

type OrderStatusChangeResponse struct {
	FromStatus model.OrderStatus `json:"fromStatus,omitempty"`
	ToStatus   model.OrderStatus `json:"toStatus"`
	ChangedAt  time.Time         `json:"changedAt"`
}

// --- Admin ---

type StatsResponse struct {
	TotalOrders      int     `json:"totalOrders"`
	PendingOrders    int     `json:"pendingOrders"`
	TotalRevenue     string  `json:"totalRevenue"`
	TotalProducts    int     `json:"totalProducts"`
	ActiveProducts   int     `json:"activeProducts"`
	ActivePercentage float64 `json:"activePercentage"`
}
