package employee

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timeconnect/attendance-backend-go/internal/domain/employee"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
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
	return nil
}

func (f *fakeEmployeeRepo) SetResetToken(_ context.Context, id string, tokenHash string, expiresAt time.Time) error {
	return nil
}

func (f *fakeEmployeeRepo) ClearResetToken(_ context.Context, id string) error {
	return nil
}

func (f *fakeEmployeeRepo) ListWithActiveResetTokens(_ context.Context, _ time.Time) ([]employee.Employee, error) {
	return nil, nil
}

func newTestService() (employee.EmployeeService, *fakeEmployeeRepo) {
	repo := &fakeEmployeeRepo{employees: []employee.Employee{
		{
			ID:           "11111111-1111-1111-1111-111111111111",
			Email:        "jane.doe@example.com",
			Names:        "Jane Doe",
			EmployeeCode: "EMP001",
			PhoneNumber:  "081234567890",
			PasswordHash: "old-hash",
		},
	}}
	return NewEmployeeService(repo), repo
}

func TestGetByAllIdentifiers(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	byID, err := svc.GetByID(ctx, "11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	byEmail, err := svc.GetByEmail(ctx, "jane.doe@example.com")
	require.NoError(t, err)
	byCode, err := svc.GetByEmployeeCode(ctx, "EMP001")
	require.NoError(t, err)

	assert.Equal(t, byID, byEmail)
	assert.Equal(t, byID, byCode)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), "22222222-2222-2222-2222-222222222222")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.GetByEmployeeCode(context.Background(), "EMP999")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdate_PartialPatch(t *testing.T) {
	svc, repo := newTestService()

	names := "Jane D. Doe"
	phone := "089876543210"
	resp, err := svc.Update(context.Background(), "11111111-1111-1111-1111-111111111111", employee.UpdateEmployeeRequest{
		Names:       &names,
		PhoneNumber: &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane D. Doe", resp.Names)
	assert.Equal(t, "089876543210", resp.PhoneNumber)
	// Untouched fields keep their values.
	assert.Equal(t, "jane.doe@example.com", resp.Email)
	assert.Equal(t, "EMP001", resp.EmployeeCode)
	assert.Equal(t, "old-hash", repo.employees[0].PasswordHash)
}

func TestUpdate_RehashesPassword(t *testing.T) {
	svc, repo := newTestService()

	password := "brand-new-pass"
	_, err := svc.Update(context.Background(), "11111111-1111-1111-1111-111111111111", employee.UpdateEmployeeRequest{
		Password: &password,
	})
	require.NoError(t, err)

	stored := repo.employees[0].PasswordHash
	assert.NotEqual(t, "old-hash", stored)
	assert.NotEqual(t, password, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)))
}

func TestUpdate_InvalidField(t *testing.T) {
	svc, _ := newTestService()

	bad := "not-an-email"
	_, err := svc.Update(context.Background(), "11111111-1111-1111-1111-111111111111", employee.UpdateEmployeeRequest{
		Email: &bad,
	})
	assert.Error(t, err)
}
