package models

import "time"

// User is the database representation of a staff member.
type User struct {
	UserID             string     `db:"user_id"`
	Name               string     `db:"name"`
	Email              string     `db:"email"`
	PasswordHash       string     `db:"password_hash"`
	Role               string     `db:"role"`
	RefreshTokenHash   *string    `db:"refresh_token_hash"`
	RefreshTokenExpiry *time.Time `db:"refresh_token_expiry"`
	GoogleSubject      *string    `db:"google_subject"`
	IsActive           bool       `db:"is_active"`
	AuditFields
}
