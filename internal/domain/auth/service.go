package auth

import (
	"context"

	"github.com/timeconnect/attendance-backend-go/internal/domain/employee"
)

// AuthService defines the credential lifecycle: registration, login,
// forgot/reset password and bearer-token backed employee resolution.
type AuthService interface {
	// Register creates a new employee account and issues an access token
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)

	// Login verifies credentials and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Logout revokes the presented access token
	Logout(ctx context.Context, token string) error

	// ForgotPassword starts the reset flow. It is success-shaped regardless
	// of whether the email exists, to prevent account enumeration.
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error

	// ResetPassword consumes a single-use reset token and stores a new password
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// ValidateEmployee re-fetches the acting employee for an authenticated request
	ValidateEmployee(ctx context.Context, id string) (employee.Employee, error)
}
