package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laramoda/storefront-api/internal/checkout"
	"github.com/laramoda/storefront-api/internal/dto"
	"github.com/laramoda/storefront-api/internal/model"
)

func TestAdminService_Stats(t *testing.T) {
	orders := newMockOrderRepo()
	for _, o := range []struct {
		total  string
		status model.OrderStatus
	}{
		{"100", model.OrderStatusPending},
		{"50", model.OrderStatusCancelled},
		{"30", model.OrderStatusDelivered},
	} {
		id := uuid.New()
		orders.orders[id] = &model.Order{ID: id, Total: decimal.RequireFromString(o.total), Status: o.status}
	}
	products := newMockProductRepo()
	products.add(&model.Product{Name: "A", IsActive: true, Price: decimal.NewFromInt(1)})
	products.add(&model.Product{Name: "B", IsActive: false, Price: decimal.NewFromInt(1)})

	svc := NewAdminService(orders, NewProductService(products, newMockImageStore(), nil, nil))
	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &dto.StatsResponse{
		TotalOrders: 3, PendingOrders: 1, TotalRevenue: "130.00",
		TotalProducts: 2, ActiveProducts: 1, ActivePercentage: 50,
	}, resp)
}

func TestAdminService_Stats_Empty(t *testing.T) {
	svc := NewAdminService(newMockOrderRepo(), NewProductService(newMockProductRepo(), newMockImageStore(), nil, nil))
	resp, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.ActivePercentage)
	assert.Equal(t, "0.00", resp.TotalRevenue)
}

func TestCheckoutService_ProductLink(t *testing.T) {
	products := newMockProductRepo()
	p := products.add(&model.Product{Name: "Vestido Floral", Price: decimal.RequireFromString("129.90"), IsActive: true})
	productSvc := NewProductService(products, newMockImageStore(), nil, nil)
	svc := NewCheckoutService(productSvc, checkout.NewWhatsApp("5511999990000", "Lara Moda"))

	link, err := svc.ProductLink(context.Background(), p.ID, dto.WhatsAppInquiryRequest{Color: "Azul", Quantity: 2})
	require.NoError(t, err)
	assert.Contains(t, link.URL, "https://wa.me/5511999990000?text=")
	assert.Contains(t, link.Message, "*Vestido Floral*")
	assert.Contains(t, link.Message, "Quantidade: 2")

	_, err = svc.ProductLink(context.Background(), uuid.New(), dto.WhatsAppInquiryRequest{})
	assert.ErrorIs(t, err, ErrProductNotFound)

	contact := svc.ContactLink()
	assert.Contains(t, contact.Message, "Lara Moda")
}
