package models

import "github.com/shopspring/decimal"

// SaleType mirrors domain.SaleType at the persistence layer.
type SaleType string

const (
	SaleTypeUnit    SaleType = "UNIT"
	SaleTypeDose    SaleType = "DOSE"
	SaleTypeService SaleType = "SERVICE"
)

// Product is the database representation of a sellable item.
// StockQty is stored in base units; for DOSE products the sold quantity is
// converted by base_unit_size before it touches this column.
type Product struct {
	ProductID    string          `db:"product_id"`
	Name         string          `db:"name"`
	Category     string          `db:"category"`
	CostPrice    decimal.Decimal `db:"cost_price"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	StockQty     decimal.Decimal `db:"stock_qty"`
	SaleType     SaleType        `db:"sale_type"`
	BaseUnitSize decimal.Decimal `db:"base_unit_size"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
