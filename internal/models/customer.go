package models

import "github.com/shopspring/decimal"

// Customer is the database representation of a patron. Balance is the running
// fiado debt; it is only ever changed inside settlement and payment
// transactions, never by plain updates.
type Customer struct {
	CustomerID  string           `db:"customer_id"`
	Name        string           `db:"name"`
	Phone       string           `db:"phone"`
	Balance     decimal.Decimal  `db:"balance"`
	CreditLimit *decimal.Decimal `db:"credit_limit"`
	IsActive    bool             `db:"is_active"`
	AuditFields
}
