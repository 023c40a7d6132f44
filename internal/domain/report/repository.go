package report

import "context"

// ReportRepository reads attendance rows joined with employee data.
type ReportRepository interface {
	// ListAttendance returns filtered rows sorted by date descending
	ListAttendance(ctx context.Context, filter Filter) ([]Row, error)
}
