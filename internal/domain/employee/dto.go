package employee

import (
	"time"

	"github.com/timeconnect/attendance-backend-go/internal/pkg/validator"
)

// EmployeeResponse is the sanitized representation of an employee.
// Password and reset-token fields are never serialized.
type EmployeeResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Names        string    `json:"names"`
	EmployeeCode string    `json:"employeeId"`
	PhoneNumber  string    `json:"phoneNumber"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		Email:        e.Email,
		Names:        e.Names,
		EmployeeCode: e.EmployeeCode,
		PhoneNumber:  e.PhoneNumber,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// UpdateEmployeeRequest carries PATCH semantics: only non-nil fields are applied.
type UpdateEmployeeRequest struct {
	Email        *string `json:"email"`
	Names        *string `json:"names"`
	EmployeeCode *string `json:"employeeId"`
	PhoneNumber  *string `json:"phoneNumber"`
	Password     *string `json:"password"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Names != nil && validator.IsEmpty(*r.Names) {
		errs = append(errs, validator.ValidationError{
			Field:   "names",
			Message: "names must not be empty",
		})
	}
	if r.EmployeeCode != nil && !validator.IsValidEmployeeCode(*r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must match EMP followed by at least 3 digits",
		})
	}
	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phoneNumber",
			Message: "phoneNumber must be 10-15 digits",
		})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
