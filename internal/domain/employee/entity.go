package employee

import (
	"time"
)

type Employee struct {
	ID           string
	Email        string
	Names        string
	EmployeeCode string
	PhoneNumber  string
	PasswordHash string

	// Reset token fields hold a bcrypt hash of the recovery token and its
	// expiry. Both are nil unless a password reset is in flight.
	ResetToken          *string
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasActiveResetToken reports whether a reset token is stored and unexpired.
func (e Employee) HasActiveResetToken(now time.Time) bool {
	return e.ResetToken != nil && e.ResetTokenExpiresAt != nil && e.ResetTokenExpiresAt.After(now)
}
