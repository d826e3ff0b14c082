package domain

import "time"

// UserRole is the staff role claim carried in the JWT.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleCashier UserRole = "CASHIER"
	RoleWaiter  UserRole = "WAITER"
)

// roleRank orders roles for AtLeast comparisons.
var roleRank = map[UserRole]int{
	RoleWaiter:  1,
	RoleCashier: 2,
	RoleAdmin:   3,
}

// AtLeast reports whether the role grants the privileges of required.
func (r UserRole) AtLeast(required UserRole) bool {
	return roleRank[r] >= roleRank[required]
}

// User is a staff member of the bar.
type User struct {
	UserID             string     `json:"userID"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	Role               UserRole   `json:"role"`
	RefreshTokenHash   *string    `json:"-"`
	RefreshTokenExpiry *time.Time `json:"-"`
	GoogleSubject      *string    `json:"-"` // Google account ID when signed in via OAuth
	IsActive           bool       `json:"isActive"`
	AuditFields
}
