package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timeconnect/attendance-backend-go/internal/domain/auth"
	"github.com/timeconnect/attendance-backend-go/internal/domain/employee"
	"github.com/timeconnect/attendance-backend-go/internal/domain/notification"
	"github.com/timeconnect/attendance-backend-go/internal/pkg/jwt"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
	nextID    int
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for _, existing := range f.employees {
		if existing.Email == e.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	f.nextID++
	e.ID = "00000000-0000-0000-0000-00000000000" + string(rune('0'+f.nextID))
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.employees = append(f.employees, e)
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) GetByEmployeeCode(_ context.Context, code string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for i := range f.employees {
		if f.employees[i].ID == e.ID {
			f.employees[i] = e
			return e, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) UpdatePassword(_ context.Context, id string, hash string) error {
	for i := range f.employees {
		if f.employees[i].ID == id {
			f.employees[i].PasswordHash = hash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) SetResetToken(_ context.Context, id string, tokenHash string, expiresAt time.Time) error {
	for i := range f.employees {
		if f.employees[i].ID == id {
			f.employees[i].ResetToken = &tokenHash
			f.employees[i].ResetTokenExpiresAt = &expiresAt
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) ClearResetToken(_ context.Context, id string) error {
	for i := range f.employees {
		if f.employees[i].ID == id {
			f.employees[i].ResetToken = nil
			f.employees[i].ResetTokenExpiresAt = nil
		}
	}
	return nil
}

func (f *fakeEmployeeRepo) ListWithActiveResetTokens(_ context.Context, now time.Time) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, e := range f.employees {
		if e.HasActiveResetToken(now) {
			result = append(result, e)
		}
	}
	return result, nil
}

type fakeDispatcher struct {
	resetEmails []notification.PasswordResetEmail
}

func (f *fakeDispatcher) EnqueueAttendance(_ context.Context, _ notification.AttendanceEmail) error {
	return nil
}

func (f *fakeDispatcher) EnqueuePasswordReset(_ context.Context, email notification.PasswordResetEmail) error {
	f.resetEmails = append(f.resetEmails, email)
	return nil
}

func passthroughTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (auth.AuthService, *fakeEmployeeRepo, *fakeDispatcher, jwt.Service) {
	repo := &fakeEmployeeRepo{}
	dispatcher := &fakeDispatcher{}
	jwtService := jwt.NewJWTService("test-secret-key", "1h")
	return NewAuthService(repo, jwtService, dispatcher, passthroughTx), repo, dispatcher, jwtService
}

func registerJane(t *testing.T, svc auth.AuthService) auth.TokenResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:        "jane.doe@example.com",
		Names:        "Jane Doe",
		EmployeeCode: "EMP001",
		PhoneNumber:  "081234567890",
		Password:     "sup3r-secret",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo, _, _ := newTestService()

	resp := registerJane(t, svc)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "jane.doe@example.com", resp.Employee.Email)
	assert.Equal(t, "EMP001", resp.Employee.EmployeeCode)

	// The stored hash must never be the raw password.
	assert.NotEqual(t, "sup3r-secret", repo.employees[0].PasswordHash)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: "sup3r-secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, resp.Employee.ID, login.Employee.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService()
	registerJane(t, svc)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:        "jane.doe@example.com",
		Names:        "Another Jane",
		EmployeeCode: "EMP002",
		PhoneNumber:  "081234567891",
		Password:     "sup3r-secret",
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _, _ := newTestService()
	registerJane(t, svc)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _, _, jwtService := newTestService()
	resp := registerJane(t, svc)

	require.False(t, jwtService.IsTokenRevoked(resp.AccessToken))
	require.NoError(t, svc.Logout(context.Background(), resp.AccessToken))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	svc, _, dispatcher, _ := newTestService()

	err := svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{
		Email: "nobody@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, dispatcher.resetEmails)
}

func TestForgotPassword_SendsTokenByMailOnly(t *testing.T) {
	svc, repo, dispatcher, _ := newTestService()
	registerJane(t, svc)

	err := svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{
		Email: "jane.doe@example.com",
	})
	require.NoError(t, err)

	require.Len(t, dispatcher.resetEmails, 1)
	raw := dispatcher.resetEmails[0].ResetToken
	assert.Len(t, raw, 64, "32 random bytes, hex encoded")

	stored := repo.employees[0]
	require.NotNil(t, stored.ResetToken)
	assert.NotEqual(t, raw, *stored.ResetToken, "only the hash is persisted")
	require.NotNil(t, stored.ResetTokenExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.ResetTokenExpiresAt, time.Minute)
}

func TestResetPassword_FullFlow(t *testing.T) {
	svc, repo, dispatcher, _ := newTestService()
	registerJane(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "jane.doe@example.com"}))
	raw := dispatcher.resetEmails[0].ResetToken

	err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{
		Token:       raw,
		NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)

	assert.Nil(t, repo.employees[0].ResetToken, "token is single use")

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "jane.doe@example.com", Password: "brand-new-pass"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, auth.LoginRequest{Email: "jane.doe@example.com", Password: "sup3r-secret"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// A consumed token cannot be replayed.
	err = svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: raw, NewPassword: "yet-another-pw"})
	assert.ErrorIs(t, err, auth.ErrInvalidResetToken)
}

func TestResetPassword_BogusToken(t *testing.T) {
	svc, _, _, _ := newTestService()
	registerJane(t, svc)

	err := svc.ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Token:       "deadbeef",
		NewPassword: "brand-new-pass",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidResetToken)
}

func TestValidateEmployee(t *testing.T) {
	svc, _, _, _ := newTestService()
	resp := registerJane(t, svc)

	emp, err := svc.ValidateEmployee(context.Background(), resp.Employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", emp.Names)

	_, err = svc.ValidateEmployee(context.Background(), "22222222-2222-2222-2222-222222222222")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
