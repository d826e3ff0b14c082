package domain

import (
	"fmt"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Customer is a patron with a running "fiado" balance. A positive balance
// means the customer owes the bar; a negative balance is store credit.
type Customer struct {
	CustomerID  string           `json:"customerID"`
	Name        string           `json:"name"`
	Phone       string           `json:"phone"`
	Balance     decimal.Decimal  `json:"balance"`
	CreditLimit *decimal.Decimal `json:"creditLimit"` // nil = unlimited
	IsActive    bool             `json:"isActive"`
	AuditFields
}

// CanAbsorbCharge reports whether adding amount to the balance would stay
// within the credit limit. A nil limit never blocks.
func (c Customer) CanAbsorbCharge(amount decimal.Decimal) bool {
	if c.CreditLimit == nil {
		return true
	}
	return c.Balance.Add(amount).LessThanOrEqual(*c.CreditLimit)
}

// Validate checks field-level invariants.
func (c Customer) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}
	if c.CreditLimit != nil && c.CreditLimit.IsNegative() {
		return fmt.Errorf("%w: credit limit must not be negative", apperrors.ErrValidation)
	}
	return nil
}
