package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/laramoda/storefront-api/internal/checkout"
	"github.com/laramoda/storefront-api/internal/dto"
	"github.com/laramoda/storefront-api/internal/model"
	"github.com/laramoda/storefront-api/internal/repository"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAccessDenied  = errors.New("access denied")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("order status transition not allowed")
	ErrProductUnavailable = errors.New("product unavailable")
)

// EventPublisher delivers order events to the background worker.
type EventPublisher interface {
	Publish(ctx context.Context, msg model.OrderMessage) error
}

type OrderService struct {
	orderRepo         repository.OrderRepository
	productRepo       repository.ProductRepository
	historyRepo       repository.OrderHistoryRepository
	users             *UserService
	publisher         EventPublisher
	whatsapp          *checkout.WhatsApp
	strictTransitions bool
	log               *slog.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	historyRepo repository.OrderHistoryRepository,
	users *UserService,
	publisher EventPublisher,
	whatsapp *checkout.WhatsApp,
	strictTransitions bool,
	log *slog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		historyRepo:       historyRepo,
		users:             users,
		publisher:         publisher,
		whatsapp:          whatsapp,
		strictTransitions: strictTransitions,
		log:               log,
	}
}

// CreateOrder snapshots the requested products at their current price and
// returns the order with the WhatsApp link that hands it to the store. The
// customer's identity is recorded first so the order can reference it.
func (s *OrderService) CreateOrder(ctx context.Context, customer model.User, req dto.CreateOrderRequest) (*model.Order, string, error) {
	if len(req.Items) == 0 {
		return nil, "", fmt.Errorf("%w: no items", ErrProductUnavailable)
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		product, err := s.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("get product: %w", err)
		}
		if product == nil || !product.IsActive {
			return nil, "", fmt.Errorf("%w: %s", ErrProductUnavailable, it.ProductID)
		}
		item := model.OrderItem{
			ProductID:     product.ID,
			Name:          product.Name,
			Price:         product.Price,
			Quantity:      it.Quantity,
			SelectedColor: strings.TrimSpace(it.SelectedColor),
			SelectedSize:  strings.TrimSpace(it.SelectedSize),
		}
		if len(product.Images) > 0 {
			item.Image = product.Images[0]
		}
		items = append(items, item)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentMethodWhatsApp
	}
	if err := s.users.Ensure(ctx, customer); err != nil {
		return nil, "", err
	}

	order := &model.Order{
		UserID:        customer.ID,
		Status:        model.OrderStatusPending,
		PaymentMethod: paymentMethod,
		PaymentStatus: model.PaymentStatusPending,
		CustomerInfo: model.CustomerInfo{
			Name:  strings.TrimSpace(req.CustomerInfo.Name),
			Email: strings.TrimSpace(req.CustomerInfo.Email),
			Phone: strings.TrimSpace(req.CustomerInfo.Phone),
		},
		Items: items,
	}
	order.Total = order.ItemsTotal()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, "", fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, model.OrderMessage{
		Event: model.OrderEventCreated, OrderID: order.ID, UserID: customer.ID,
		ToStatus: order.Status, OccurredAt: order.CreatedAt,
	})
	return order, s.whatsapp.Link(s.whatsapp.OrderMessage(order)), nil
}

func (s *OrderService) GetByID(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

// List returns every order for admins and only the caller's own otherwise.
func (s *OrderService) List(ctx context.Context, userID uuid.UUID, isAdmin bool) ([]model.Order, error) {
	if isAdmin {
		return s.orderRepo.List(ctx)
	}
	return s.orderRepo.ListByUserID(ctx, userID)
}

// UpdateStatus moves an order to status. Outside strict mode any known status
// is accepted, matching how the back-office has always behaved.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == status {
		return order, nil
	}
	if s.strictTransitions && !order.Status.CanTransitionTo(status) {
		if order.Status.Terminal() {
			return nil, fmt.Errorf("%w: order is already %s", ErrInvalidTransition, order.Status)
		}
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	previous := order.Status
	order.Status = status
	order.UpdatedAt = time.Now()
	s.publish(ctx, model.OrderMessage{
		Event: model.OrderEventStatusChanged, OrderID: order.ID, UserID: order.UserID,
		FromStatus: previous, ToStatus: status, OccurredAt: order.UpdatedAt,
	})
	return order, nil
}

func (s *OrderService) History(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusChange, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.historyRepo.ListByOrderID(ctx, orderID)
}

// publish is fire-and-forget: the order is already committed. A failure
// means the status history misses this change, so it is logged.
func (s *OrderService) publish(ctx context.Context, msg model.OrderMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, msg); err != nil && s.log != nil {
		s.log.Warn("publish order event", "error", err,
			"order_id", msg.OrderID, "event", msg.Event, "to_status", msg.ToStatus)
	}
}
