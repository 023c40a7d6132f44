package report

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/timeconnect/attendance-backend-go/internal/pkg/validator"
)

// Filter narrows the attendance report to one employee and/or a date range.
// All fields are optional; an empty filter exports everything.
type Filter struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != "" && !validator.IsValidUUID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be a valid UUID",
		})
	}

	var start, end time.Time
	var startOK, endOK bool
	if f.StartDate != "" {
		if start, startOK = validator.IsValidDate(f.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be YYYY-MM-DD",
			})
		}
	}
	if f.EndDate != "" {
		if end, endOK = validator.IsValidDate(f.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be YYYY-MM-DD",
			})
		}
	}
	if (f.StartDate == "") != (f.EndDate == "") {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate and endDate must be provided together",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Row is one attendance record joined with its employee, as rendered in
// the PDF and Excel exports.
type Row struct {
	Date         string
	EmployeeName string
	EmployeeCode string
	Entry        time.Time
	Depart       *time.Time
	ActiveHours  decimal.Decimal
	Status       string
	Comment      string
}

// Summary aggregates the exported rows.
type Summary struct {
	TotalRecords int
	TotalHours   decimal.Decimal
	AverageHours decimal.Decimal
}

// Summarize computes totals over the rows of one export.
func Summarize(rows []Row) Summary {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.ActiveHours)
	}
	avg := decimal.Zero
	if len(rows) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(rows)))).Round(2)
	}
	return Summary{
		TotalRecords: len(rows),
		TotalHours:   total,
		AverageHours: avg,
	}
}
