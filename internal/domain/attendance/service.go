package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// RecordEvent applies one timestamped event: the first event of the day
	// creates the arrival record, the second finalizes it as a departure.
	RecordEvent(ctx context.Context, req RecordAttendanceRequest, at time.Time) (AttendanceResponse, error)

	// GetEmployeeAttendance returns all records for an employee, newest first
	GetEmployeeAttendance(ctx context.Context, identifier string) ([]AttendanceResponse, error)

	// GetTodayAttendance returns today's record, or nil when the employee
	// has not clocked in yet (an explicit no-record signal, not an error).
	GetTodayAttendance(ctx context.Context, identifier string, at time.Time) (*AttendanceResponse, error)
}
