package attendance

import "context"

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// calendar date, or nil when the employee has no record that day.
	// The storage layer enforces uniqueness of (employee_id, date).
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*Attendance, error)

	// Update persists departure, active hours, status and comment in place
	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	// ListByEmployee returns all records for an employee, newest date first
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
}
