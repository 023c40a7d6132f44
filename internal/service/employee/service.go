package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/timeconnect/attendance-backend-go/internal/domain/employee"
	"golang.org/x/crypto/bcrypt"
)

type employeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &employeeServiceImpl{employeeRepo: employeeRepo}
}

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}
	return err
}

// GetByID implements employee.EmployeeService.
func (s *employeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, mapNotFound(err)
	}
	return employee.NewEmployeeResponse(emp), nil
}

// GetByEmail implements employee.EmployeeService.
func (s *employeeServiceImpl) GetByEmail(ctx context.Context, email string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByEmail(ctx, email)
	if err != nil {
		return employee.EmployeeResponse{}, mapNotFound(err)
	}
	return employee.NewEmployeeResponse(emp), nil
}

// GetByEmployeeCode implements employee.EmployeeService.
func (s *employeeServiceImpl) GetByEmployeeCode(ctx context.Context, code string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByEmployeeCode(ctx, code)
	if err != nil {
		return employee.EmployeeResponse{}, mapNotFound(err)
	}
	return employee.NewEmployeeResponse(emp), nil
}

// Update implements employee.EmployeeService. Only fields present in the
// request are changed; a new password is re-hashed before storage.
func (s *employeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, mapNotFound(err)
	}

	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Names != nil {
		emp.Names = *req.Names
	}
	if req.EmployeeCode != nil {
		emp.EmployeeCode = *req.EmployeeCode
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = *req.PhoneNumber
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		emp.PasswordHash = string(hash)
	}

	updated, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, mapNotFound(err)
	}
	return employee.NewEmployeeResponse(updated), nil
}
