package mapping

import (
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:    d.ProductID,
		Name:         d.Name,
		Category:     d.Category,
		CostPrice:    d.CostPrice,
		UnitPrice:    d.UnitPrice,
		StockQty:     d.StockQty,
		SaleType:     models.SaleType(d.SaleType),
		BaseUnitSize: d.BaseUnitSize,
		IsActive:     d.IsActive,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:    m.ProductID,
		Name:         m.Name,
		Category:     m.Category,
		CostPrice:    m.CostPrice,
		UnitPrice:    m.UnitPrice,
		StockQty:     m.StockQty,
		SaleType:     domain.SaleType(m.SaleType),
		BaseUnitSize: m.BaseUnitSize,
		IsActive:     m.IsActive,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
