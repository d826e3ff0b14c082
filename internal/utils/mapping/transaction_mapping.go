package mapping

import (
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var method *string
	if d.PaymentMethod != nil {
		s := string(*d.PaymentMethod)
		method = &s
	}
	return models.Transaction{
		TransactionID: d.TransactionID,
		Type:          models.TransactionType(d.Type),
		Total:         d.Total,
		OccurredAt:    d.OccurredAt,
		CustomerID:    d.CustomerID,
		SupplierID:    d.SupplierID,
		OrderID:       d.OrderID,
		PaymentMethod: method,
		Description:   d.Description,
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

// ToModelTransactionItems converts a domain item snapshot into rows,
// assigning line numbers by position.
func ToModelTransactionItems(transactionID string, items []domain.TransactionItem) []models.TransactionItem {
	ms := make([]models.TransactionItem, len(items))
	for i, item := range items {
		ms[i] = models.TransactionItem{
			TransactionID: transactionID,
			LineNo:        i + 1,
			ProductID:     item.ProductID,
			Name:          item.Name,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			CostPrice:     item.CostPrice,
		}
	}
	return ms
}

// ToDomainTransaction converts a model Transaction plus its item rows to a
// domain Transaction.
func ToDomainTransaction(m models.Transaction, items []models.TransactionItem) domain.Transaction {
	var method *domain.PaymentMethod
	if m.PaymentMethod != nil {
		pm := domain.PaymentMethod(*m.PaymentMethod)
		method = &pm
	}
	ds := make([]domain.TransactionItem, len(items))
	for i, item := range items {
		ds[i] = domain.TransactionItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CostPrice: item.CostPrice,
		}
	}
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Type:          domain.TransactionType(m.Type),
		Total:         m.Total,
		OccurredAt:    m.OccurredAt,
		CustomerID:    m.CustomerID,
		SupplierID:    m.SupplierID,
		OrderID:       m.OrderID,
		PaymentMethod: method,
		Description:   m.Description,
		Items:         ds,
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}
