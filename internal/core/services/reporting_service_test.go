package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func saleItem(productID, name string, qty, unitPrice, costPrice int64) domain.TransactionItem {
	return domain.TransactionItem{
		ProductID: productID,
		Name:      name,
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(unitPrice),
		CostPrice: decimal.NewFromInt(costPrice),
	}
}

func TestAggregateProductSales(t *testing.T) {
	items := []domain.TransactionItem{
		saleItem("beer", "Cerveja Lata", 3, 5, 3),
		saleItem("caipirinha", "Caipirinha", 2, 18, 6),
		saleItem("beer", "Cerveja Lata", 7, 5, 3),
	}

	rows := services.AggregateProductSales(items, 0)

	require.Len(t, rows, 2)

	// Beer: 10 x 5 = 50 revenue, beats 2 x 18 = 36.
	assert.Equal(t, "beer", rows[0].ProductID)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(50)))
	assert.True(t, rows[0].Profit.Equal(decimal.NewFromInt(20)))

	assert.Equal(t, "caipirinha", rows[1].ProductID)
	assert.True(t, rows[1].Revenue.Equal(decimal.NewFromInt(36)))
	assert.True(t, rows[1].Profit.Equal(decimal.NewFromInt(24)))
}

func TestAggregateProductSales_OrderIndependent(t *testing.T) {
	forward := []domain.TransactionItem{
		saleItem("a", "A", 1, 10, 5),
		saleItem("b", "B", 2, 10, 5),
		saleItem("c", "C", 1, 20, 5),
	}
	reversed := []domain.TransactionItem{forward[2], forward[1], forward[0]}

	assert.Equal(t, services.AggregateProductSales(forward, 0), services.AggregateProductSales(reversed, 0))
}

func TestAggregateProductSales_RevenueTieBreaksOnProductID(t *testing.T) {
	items := []domain.TransactionItem{
		saleItem("zzz", "Zed", 1, 10, 5),
		saleItem("aaa", "Ay", 1, 10, 5),
	}

	rows := services.AggregateProductSales(items, 0)

	require.Len(t, rows, 2)
	assert.Equal(t, "aaa", rows[0].ProductID)
	assert.Equal(t, "zzz", rows[1].ProductID)
}

func TestAggregateProductSales_TopLimits(t *testing.T) {
	items := []domain.TransactionItem{
		saleItem("a", "A", 1, 30, 5),
		saleItem("b", "B", 1, 20, 5),
		saleItem("c", "C", 1, 10, 5),
	}

	rows := services.AggregateProductSales(items, 2)

	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ProductID)
	assert.Equal(t, "b", rows[1].ProductID)
}

func TestAggregateProductSales_Empty(t *testing.T) {
	assert.Empty(t, services.AggregateProductSales(nil, 5))
}

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReportingRepository)
	service := services.NewReportingService(mockRepo, 5)

	mockRepo.On("CountLowStock", ctx, decimal.NewFromInt(5)).Return(3, nil).Once()
	mockRepo.On("CountDebtors", ctx).Return(2, nil).Once()
	mockRepo.On("CountOpenOrders", ctx).Return(4, nil).Once()
	mockRepo.On("SalesTotalBetween", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(250), 12, nil).Once()

	summary, err := service.DashboardSummary(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.LowStockCount)
	assert.Equal(t, 2, summary.DebtorCount)
	assert.Equal(t, 4, summary.OpenOrderCount)
	assert.True(t, summary.SalesToday.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 12, summary.SalesCountToday)

	// Today's window starts at local midnight.
	from := mockRepo.Calls[3].Arguments.Get(1).(time.Time)
	assert.Equal(t, 0, from.Hour())
	assert.Equal(t, 0, from.Minute())

	mockRepo.AssertExpectations(t)
}
