package attendance

import (
	"time"

	"github.com/timeconnect/attendance-backend-go/internal/pkg/validator"
)

// RecordAttendanceRequest is the single combined clock-in/clock-out request.
// Whether it is an arrival or a departure is inferred from the presence of
// today's record, not from the payload.
type RecordAttendanceRequest struct {
	EmployeeIdentifier string `json:"employeeIdentifier"`
	Comment            string `json:"comment,omitempty"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeIdentifier) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeIdentifier",
			Message: "employeeIdentifier is required",
		})
	}
	if len(r.Comment) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Date        string     `json:"date"`
	Entry       time.Time  `json:"entry"`
	Depart      *time.Time `json:"depart"`
	ActiveHours float64    `json:"activeHours"`
	Status      Status     `json:"status"`
	Comment     string     `json:"comment"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Date:        a.Date,
		Entry:       a.Entry,
		Depart:      a.Depart,
		ActiveHours: a.ActiveHours.InexactFloat64(),
		Status:      a.Status,
		Comment:     a.Comment,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
