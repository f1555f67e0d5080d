package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/laramoda/storefront-api/internal/dto"
	"github.com/laramoda/storefront-api/internal/model"
	"github.com/laramoda/storefront-api/internal/repository"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	users       *UserService
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, users *UserService) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo, users: users}
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return items, nil
}

// AddItem records the customer's identity before the first cart row can
// reference it.
func (s *CartService) AddItem(ctx context.Context, customer model.User, req dto.AddCartItemRequest) (*model.CartItem, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, product.ID)
	}

	if err := s.users.Ensure(ctx, customer); err != nil {
		return nil, err
	}

	item := &model.CartItem{
		UserID:        customer.ID,
		ProductID:     product.ID,
		Quantity:      req.Quantity,
		SelectedColor: strings.TrimSpace(req.SelectedColor),
		SelectedSize:  strings.TrimSpace(req.SelectedSize),
	}
	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	return item, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	err := s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCartItemNotFound
	}
	return err
}

func (s *CartService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	err := s.cartRepo.DeleteItem(ctx, userID, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCartItemNotFound
	}
	return err
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.Clear(ctx, userID)
}
