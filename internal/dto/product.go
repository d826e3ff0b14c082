package dto

import (
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a new product.
type CreateProductRequest struct {
	Name         string           `json:"name" binding:"required"`
	Category     string           `json:"category"`
	CostPrice    decimal.Decimal  `json:"costPrice"`
	UnitPrice    decimal.Decimal  `json:"unitPrice"`
	StockQty     decimal.Decimal  `json:"stockQty"`
	SaleType     domain.SaleType  `json:"saleType" binding:"required,saletype"`
	BaseUnitSize *decimal.Decimal `json:"baseUnitSize"` // required for DOSE products
}

// UpdateProductRequest defines the data allowed for updating a product.
// Pointers distinguish zero-value updates from fields not provided.
// Stock is deliberately absent: it only moves through settlement and restock.
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	CostPrice    *decimal.Decimal `json:"costPrice"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	BaseUnitSize *decimal.Decimal `json:"baseUnitSize"`
}

// ReceiveStockRequest defines a stock replenishment.
type ReceiveStockRequest struct {
	Quantity   decimal.Decimal  `json:"quantity" binding:"required"`
	TotalCost  *decimal.Decimal `json:"totalCost"`
	SupplierID *string          `json:"supplierID"`
}

// ProductResponse mirrors domain.Product.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	StockQty      decimal.Decimal `json:"stockQty"`
	SaleType      domain.SaleType `json:"saleType"`
	BaseUnitSize  decimal.Decimal `json:"baseUnitSize"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToProductResponse converts a domain.Product to its response DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Category:      p.Category,
		CostPrice:     p.CostPrice,
		UnitPrice:     p.UnitPrice,
		StockQty:      p.StockQty,
		SaleType:      p.SaleType,
		BaseUnitSize:  p.BaseUnitSize,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToProductResponses converts a slice of products.
func ToProductResponses(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit           int  `form:"limit,default=50"`
	Offset          int  `form:"offset,default=0"`
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}
