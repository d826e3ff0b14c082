package models

// Supplier is the database representation of a vendor.
type Supplier struct {
	SupplierID string `db:"supplier_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	Email      string `db:"email"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
