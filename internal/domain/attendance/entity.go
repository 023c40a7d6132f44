package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used as the per-day natural key.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusOnTime   Status = "ONTIME"
	StatusLate     Status = "LATE"
	StatusOvertime Status = "OVERTIME"
	StatusPretime  Status = "PRETIME"
)

// Attendance is one employee's entry/departure pair for a single calendar
// date. A record is created on the first event of the day (arrival) and
// mutated in place by the second (departure); it is never duplicated for
// the same (employee, date).
type Attendance struct {
	ID         string
	EmployeeID string

	Entry time.Time
	// Depart is set to the entry time as a placeholder on arrival and
	// overwritten by the departure event.
	Depart *time.Time

	// Date is the UTC calendar date of the entry, YYYY-MM-DD.
	Date string

	ActiveHours decimal.Decimal
	Status      Status
	Comment     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Departed reports whether the departure event has been recorded, i.e. the
// departure timestamp has moved past the arrival placeholder.
func (a Attendance) Departed() bool {
	return a.Depart != nil && !a.Depart.Equal(a.Entry)
}
