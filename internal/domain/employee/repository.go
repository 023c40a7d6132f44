package employee

import (
	"context"
	"time"
)

// EmployeeRepository defines data access methods for employee records.
type EmployeeRepository interface {
	// Create creates a new employee record
	Create(ctx context.Context, employee Employee) (Employee, error)

	// GetByID retrieves an employee by primary key
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByEmail retrieves an employee by unique email
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// GetByEmployeeCode retrieves an employee by the EMPxxx code
	GetByEmployeeCode(ctx context.Context, code string) (Employee, error)

	// Update persists mutable profile fields
	Update(ctx context.Context, employee Employee) (Employee, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// SetResetToken stores the hashed reset token and its expiry
	SetResetToken(ctx context.Context, id string, tokenHash string, expiresAt time.Time) error

	// ClearResetToken removes the reset token so it cannot be reused
	ClearResetToken(ctx context.Context, id string) error

	// ListWithActiveResetTokens returns employees whose reset token has not expired.
	// Tokens are stored hashed, so reset verification has to compare candidates.
	ListWithActiveResetTokens(ctx context.Context, now time.Time) ([]Employee, error)
}
