package domain_test

import (
	"testing"
	"time"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_ReplaceItemsRecomputesTotal(t *testing.T) {
	order := domain.Order{OrderID: "o1", Status: domain.OrderOpen}

	err := order.ReplaceItems([]domain.OrderItem{
		{ProductID: "p1", Name: "Cerveja", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(5)},
		{ProductID: "p2", Name: "Porção", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(25)},
	})

	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(40)))

	// An empty replacement zeroes the total again.
	require.NoError(t, order.ReplaceItems(nil))
	assert.True(t, order.Total.IsZero())
}

func TestOrder_ReplaceItemsValidatesLines(t *testing.T) {
	order := domain.Order{OrderID: "o1", Status: domain.OrderOpen}

	err := order.ReplaceItems([]domain.OrderItem{
		{ProductID: "p1", Name: "Cerveja", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(5)},
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, order.Items)
}

func TestOrder_ReplaceItemsOnClosedOrder(t *testing.T) {
	now := time.Now()
	order := domain.Order{OrderID: "o1", Status: domain.OrderClosed, ClosedAt: &now}

	err := order.ReplaceItems([]domain.OrderItem{
		{ProductID: "p1", Name: "Cerveja", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5)},
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestOrder_CloseIsFinal(t *testing.T) {
	order := domain.Order{OrderID: "o1", Status: domain.OrderOpen}
	now := time.Now()

	require.NoError(t, order.Close(now))
	assert.Equal(t, domain.OrderClosed, order.Status)
	require.NotNil(t, order.ClosedAt)
	assert.True(t, order.ClosedAt.Equal(now))

	assert.ErrorIs(t, order.Close(now.Add(time.Minute)), apperrors.ErrInvalidState)
}

func TestProduct_StockDelta(t *testing.T) {
	tests := []struct {
		name     string
		product  domain.Product
		quantity decimal.Decimal
		want     decimal.Decimal
	}{
		{
			name:     "unit product moves one for one",
			product:  domain.Product{SaleType: domain.SaleTypeUnit},
			quantity: decimal.NewFromInt(3),
			want:     decimal.NewFromInt(3),
		},
		{
			name:     "dose product scales by base unit size",
			product:  domain.Product{SaleType: domain.SaleTypeDose, BaseUnitSize: decimal.RequireFromString("0.05")},
			quantity: decimal.NewFromInt(4),
			want:     decimal.RequireFromString("0.2"),
		},
		{
			name:     "service product never moves stock",
			product:  domain.Product{SaleType: domain.SaleTypeService},
			quantity: decimal.NewFromInt(10),
			want:     decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.product.StockDelta(tt.quantity)
			assert.True(t, got.Equal(tt.want), "want %s, got %s", tt.want, got)
		})
	}
}

func TestCustomer_CanAbsorbCharge(t *testing.T) {
	limit := decimal.NewFromInt(100)

	unlimited := domain.Customer{Balance: decimal.NewFromInt(500)}
	assert.True(t, unlimited.CanAbsorbCharge(decimal.NewFromInt(1000)))

	limited := domain.Customer{Balance: decimal.NewFromInt(80), CreditLimit: &limit}
	assert.True(t, limited.CanAbsorbCharge(decimal.NewFromInt(20)))
	assert.False(t, limited.CanAbsorbCharge(decimal.RequireFromString("20.01")))
}
