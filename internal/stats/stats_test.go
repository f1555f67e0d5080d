package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/laramoda/storefront-api/internal/model"
)

func order(total string, status model.OrderStatus) model.Order {
	return model.Order{Total: decimal.RequireFromString(total), Status: status}
}

func TestCompute_RevenueExcludesCancelled(t *testing.T) {
	orders := []model.Order{
		order("100", model.OrderStatusPending),
		order("50", model.OrderStatusCancelled),
		order("30", model.OrderStatusDelivered),
	}
	d := Compute(orders, nil)

	assert.Equal(t, 3, d.TotalOrders)
	assert.Equal(t, 1, d.PendingOrders)
	assert.True(t, decimal.NewFromInt(130).Equal(d.TotalRevenue), "got %s", d.TotalRevenue)
}

func TestCompute_Products(t *testing.T) {
	products := []model.Product{{IsActive: true}, {IsActive: false}, {IsActive: true}}
	d := Compute(nil, products)

	assert.Equal(t, 3, d.TotalProducts)
	assert.Equal(t, 2, d.ActiveProducts)
	assert.Equal(t, "66.7", d.ActivePercentage.String())
	assert.True(t, d.TotalRevenue.IsZero())
}

func TestCompute_Empty(t *testing.T) {
	d := Compute(nil, nil)
	assert.Zero(t, d.TotalOrders)
	assert.True(t, d.ActivePercentage.IsZero())
}

func TestPercentage_ZeroTotal(t *testing.T) {
	assert.True(t, Percentage(0, 0).IsZero())
	assert.True(t, Percentage(5, 0).IsZero())
	assert.Equal(t, "100", Percentage(4, 4).String())
}
