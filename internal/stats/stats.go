// Package stats derives the admin dashboard figures from order and product lists.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/laramoda/storefront-api/internal/model"
)

type Dashboard struct {
	TotalOrders      int
	PendingOrders    int
	TotalRevenue     decimal.Decimal
	TotalProducts    int
	ActiveProducts   int
	ActivePercentage decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Compute builds the dashboard. Cancelled orders never count towards revenue.
func Compute(orders []model.Order, products []model.Product) Dashboard {
	d := Dashboard{
		TotalOrders:   len(orders),
		TotalRevenue:  decimal.Zero,
		TotalProducts: len(products),
	}
	for _, o := range orders {
		if o.Status == model.OrderStatusPending {
			d.PendingOrders++
		}
		if o.Status != model.OrderStatusCancelled {
			d.TotalRevenue = d.TotalRevenue.Add(o.Total)
		}
	}
	for _, p := range products {
		if p.IsActive {
			d.ActiveProducts++
		}
	}
	d.ActivePercentage = Percentage(d.ActiveProducts, d.TotalProducts)
	return d
}

// Percentage returns part/total*100 rounded to one decimal place, or 0 when total is 0.
func Percentage(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).
		DivRound(decimal.NewFromInt(int64(total)), 1)
}
