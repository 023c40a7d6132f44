package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/timeconnect/attendance-backend-go/internal/domain/employee"
	"github.com/timeconnect/attendance-backend-go/internal/pkg/database"
)

const employeeColumns = `id, email, names, employee_code, phone_number, password_hash,
		   reset_token, reset_token_expires_at, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.Email,
		&e.Names,
		&e.EmployeeCode,
		&e.PhoneNumber,
		&e.PasswordHash,
		&e.ResetToken,
		&e.ResetTokenExpiresAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// mapUniqueViolation converts a unique-constraint violation into the
// matching domain error so duplicate inserts surface as CONFLICT.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return employee.ErrEmailExists
		case strings.Contains(pgErr.ConstraintName, "employee_code"):
			return employee.ErrEmployeeCodeExists
		}
	}
	return err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, email, names, employee_code, phone_number, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + employeeColumns + `
	`

	created, err := scanEmployee(q.QueryRow(ctx, query,
		uuid.NewString(),
		newEmployee.Email,
		newEmployee.Names,
		newEmployee.EmployeeCode,
		newEmployee.PhoneNumber,
		newEmployee.PasswordHash,
	))
	if err != nil {
		return employee.Employee{}, mapUniqueViolation(err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	found, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		return employee.Employee{}, err
	}
	return found, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`

	found, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		return employee.Employee{}, err
	}
	return found, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`

	found, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		return employee.Employee{}, err
	}
	return found, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET email = $1, names = $2, employee_code = $3, phone_number = $4, password_hash = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + employeeColumns + `
	`

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		e.Email,
		e.Names,
		e.EmployeeCode,
		e.PhoneNumber,
		e.PasswordHash,
		e.ID,
	))
	if err != nil {
		return employee.Employee{}, mapUniqueViolation(err)
	}

	return updated, nil
}

// UpdatePassword implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetResetToken implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetResetToken(ctx context.Context, id string, tokenHash string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees SET reset_token = $1, reset_token_expires_at = $2, updated_at = NOW() WHERE id = $3
	`, tokenHash, expiresAt, id)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ClearResetToken implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ClearResetToken(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE employees SET reset_token = NULL, reset_token_expires_at = NULL, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

// ListWithActiveResetTokens implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListWithActiveResetTokens(ctx context.Context, now time.Time) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE reset_token IS NOT NULL
		  AND reset_token_expires_at > $1
	`

	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees with active reset tokens: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
