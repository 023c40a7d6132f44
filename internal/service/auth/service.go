package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/timeconnect/attendance-backend-go/internal/domain/auth"
	"github.com/timeconnect/attendance-backend-go/internal/domain/employee"
	"github.com/timeconnect/attendance-backend-go/internal/domain/notification"
	"github.com/timeconnect/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL bounds how long a password-reset token stays usable.
const resetTokenTTL = time.Hour

// TxRunner executes fn atomically. The production implementation wraps a
// database transaction; tests substitute a pass-through.
type TxRunner func(ctx context.Context, fn func(txCtx context.Context) error) error

type authServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
	dispatcher   notification.Dispatcher
	runInTx      TxRunner
}

func NewAuthService(
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
	dispatcher notification.Dispatcher,
	runInTx TxRunner,
) auth.AuthService {
	return &authServiceImpl{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
		dispatcher:   dispatcher,
		runInTx:      runInTx,
	}
}

// Register implements auth.AuthService.
func (s *authServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// Uniqueness of email and employee code is enforced by the database;
	// duplicate inserts come back as the matching conflict error.
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Email:        req.Email,
		Names:        req.Names,
		EmployeeCode: req.EmployeeCode,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return s.issueToken(created)
}

// Login implements auth.AuthService.
func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up employee: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)) != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueToken(emp)
}

func (s *authServiceImpl) issueToken(emp employee.Employee) (auth.TokenResponse, error) {
	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		Employee:    employee.NewEmployeeResponse(emp),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (s *authServiceImpl) Logout(_ context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	s.jwtService.RevokeToken(token)
	return nil
}

// ForgotPassword implements auth.AuthService. Unknown emails return success
// so the endpoint cannot be used to probe which accounts exist.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			slog.Info("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up employee: %w", err)
	}

	rawToken, err := generateResetToken()
	if err != nil {
		return err
	}

	tokenHash, err := bcrypt.GenerateFromPassword([]byte(rawToken), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash reset token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(resetTokenTTL)
	if err := s.employeeRepo.SetResetToken(ctx, emp.ID, string(tokenHash), expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	// The raw token leaves the system only through the reset email.
	err = s.dispatcher.EnqueuePasswordReset(ctx, notification.PasswordResetEmail{
		EmployeeEmail: emp.Email,
		EmployeeName:  emp.Names,
		ResetToken:    rawToken,
		ExpiresAt:     expiresAt.Format(time.RFC1123),
	})
	if err != nil {
		slog.Warn("failed to enqueue password reset email", "employee_id", emp.ID, "error", err)
	}

	return nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ResetPassword implements auth.AuthService. Tokens are stored hashed, so the
// presented token is compared against every unexpired candidate.
func (s *authServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	candidates, err := s.employeeRepo.ListWithActiveResetTokens(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to list reset candidates: %w", err)
	}

	for _, emp := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(*emp.ResetToken), []byte(req.Token)) != nil {
			continue
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		// Single use: the token is cleared in the same transaction that
		// stores the new password.
		return s.runInTx(ctx, func(txCtx context.Context) error {
			if err := s.employeeRepo.UpdatePassword(txCtx, emp.ID, string(passwordHash)); err != nil {
				return fmt.Errorf("failed to update password: %w", err)
			}
			return s.employeeRepo.ClearResetToken(txCtx, emp.ID)
		})
	}

	return auth.ErrInvalidResetToken
}

// ValidateEmployee implements auth.AuthService.
func (s *authServiceImpl) ValidateEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to validate employee: %w", err)
	}
	return emp, nil
}
