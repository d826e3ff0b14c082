package domain

import (
	"fmt"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// SaleType describes how a product is sold and therefore how its stock is tracked.
type SaleType string

const (
	// SaleTypeUnit is sold and stocked one unit at a time (a bottle, a can).
	SaleTypeUnit SaleType = "UNIT"
	// SaleTypeDose is sold in sub-units poured from a stocked container
	// (doses from a bottle); stock moves by quantity x BaseUnitSize.
	SaleTypeDose SaleType = "DOSE"
	// SaleTypeService has no physical stock (cover charge, table fee).
	SaleTypeService SaleType = "SERVICE"
)

// Product represents an item the bar sells or consumes.
type Product struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	StockQty     decimal.Decimal `json:"stockQty"`
	SaleType     SaleType        `json:"saleType"`
	BaseUnitSize decimal.Decimal `json:"baseUnitSize"` // conversion factor for DOSE products; 1 otherwise
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// TracksStock reports whether settlements and restocks move this product's stock.
func (p Product) TracksStock() bool {
	return p.SaleType != SaleTypeService
}

// StockDelta converts a sold/received quantity into the stock movement it
// causes, applying the base-unit conversion for dose-based products.
// SERVICE products always yield zero.
func (p Product) StockDelta(quantity decimal.Decimal) decimal.Decimal {
	if !p.TracksStock() {
		return decimal.Zero
	}
	if p.SaleType == SaleTypeDose && p.BaseUnitSize.IsPositive() {
		return quantity.Mul(p.BaseUnitSize)
	}
	return quantity
}

// Validate checks field-level invariants.
func (p Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
	}
	switch p.SaleType {
	case SaleTypeUnit, SaleTypeDose, SaleTypeService:
	default:
		return fmt.Errorf("%w: unknown sale type %q", apperrors.ErrValidation, p.SaleType)
	}
	if p.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
	}
	if p.CostPrice.IsNegative() {
		return fmt.Errorf("%w: cost price must not be negative", apperrors.ErrValidation)
	}
	if p.StockQty.IsNegative() {
		return fmt.Errorf("%w: stock quantity must not be negative", apperrors.ErrValidation)
	}
	if p.SaleType == SaleTypeDose && !p.BaseUnitSize.IsPositive() {
		return fmt.Errorf("%w: dose products require a positive base unit size", apperrors.ErrValidation)
	}
	return nil
}
