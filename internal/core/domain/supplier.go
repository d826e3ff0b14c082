package domain

import (
	"fmt"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
)

// Supplier is a vendor the bar buys stock from.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

func (s Supplier) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: supplier name is required", apperrors.ErrValidation)
	}
	return nil
}
