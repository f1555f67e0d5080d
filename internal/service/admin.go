package service

import (
	"context"
	"fmt"

	"github.com/laramoda/storefront-api/internal/dto"
	"github.com/laramoda/storefront-api/internal/repository"
	"github.com/laramoda/storefront-api/internal/stats"
)

type AdminService struct {
	orderRepo repository.OrderRepository
	products  *ProductService
}

func NewAdminService(orderRepo repository.OrderRepository, products *ProductService) *AdminService {
	return &AdminService{orderRepo: orderRepo, products: products}
}

func (s *AdminService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	products, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}

	d := stats.Compute(orders, products)
	return &dto.StatsResponse{
		TotalOrders:      d.TotalOrders,
		PendingOrders:    d.PendingOrders,
		TotalRevenue:     d.TotalRevenue.StringFixed(2),
		TotalProducts:    d.TotalProducts,
		ActiveProducts:   d.ActiveProducts,
		ActivePercentage: d.ActivePercentage.InexactFloat64(),
	}, nil
}
