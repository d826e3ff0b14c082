package mapping

import (
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/models"
)

// ToModelOrder converts a domain Order to a model Order. Items are mapped
// separately because they live in their own table.
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:     d.OrderID,
		DisplayName: d.DisplayName,
		CustomerID:  d.CustomerID,
		Total:       d.Total,
		Status:      models.OrderStatus(d.Status),
		ClosedAt:    d.ClosedAt,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToModelOrderItems converts a domain item list into order_items rows,
// assigning line numbers by position.
func ToModelOrderItems(orderID string, items []domain.OrderItem) []models.OrderItem {
	ms := make([]models.OrderItem, len(items))
	for i, item := range items {
		ms[i] = models.OrderItem{
			OrderID:   orderID,
			LineNo:    i + 1,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return ms
}

// ToDomainOrder converts a model Order plus its item rows to a domain Order
func ToDomainOrder(m models.Order, items []models.OrderItem) domain.Order {
	ds := make([]domain.OrderItem, len(items))
	for i, item := range items {
		ds[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return domain.Order{
		OrderID:     m.OrderID,
		DisplayName: m.DisplayName,
		CustomerID:  m.CustomerID,
		Items:       ds,
		Total:       m.Total,
		Status:      domain.OrderStatus(m.Status),
		ClosedAt:    m.ClosedAt,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}
