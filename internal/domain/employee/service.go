package employee

import "context"

// EmployeeService defines business logic for employee profile operations
type EmployeeService interface {
	// GetByID retrieves a single employee by primary key
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)

	// GetByEmail retrieves a single employee by email
	GetByEmail(ctx context.Context, email string) (EmployeeResponse, error)

	// GetByEmployeeCode retrieves a single employee by the EMPxxx code
	GetByEmployeeCode(ctx context.Context, code string) (EmployeeResponse, error)

	// Update applies a partial profile update
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
}
