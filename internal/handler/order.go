package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laramoda/storefront-api/internal/dto"
	"github.com/laramoda/storefront-api/internal/middleware"
	"github.com/laramoda/storefront-api/internal/model"
	"github.com/laramoda/storefront-api/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, log: log}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, link, err := h.orderService.CreateOrder(c.Request.Context(), middleware.GetIdentity(c), req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateOrderResponse{Order: toOrderResponse(order), WhatsAppURL: link})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context(), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{Orders: items, Total: len(items)})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseID(c, "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID, middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := parseID(c, "order")
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) History(c *gin.Context) {
	orderID, ok := parseID(c, "order")
	if !ok {
		return
	}

	changes, err := h.orderService.History(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	out := make([]dto.OrderStatusChangeResponse, 0, len(changes))
	for _, ch := range changes {
		out = append(out, dto.OrderStatusChangeResponse{
			FromStatus: ch.FromStatus, ToStatus: ch.ToStatus, ChangedAt: ch.ChangedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:     item.ProductID,
			Name:          item.Name,
			Price:         item.Price.StringFixed(2),
			Quantity:      item.Quantity,
			SelectedColor: item.SelectedColor,
			SelectedSize:  item.SelectedSize,
			Image:         item.Image,
		})
	}
	return dto.OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		Total:         order.Total.StringFixed(2),
		CustomerInfo:  order.CustomerInfo,
		Items:         items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
