package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/timeconnect/attendance-backend-go/internal/domain/report"
	"github.com/timeconnect/attendance-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// ListAttendance implements report.ReportRepository.
func (r *reportRepositoryImpl) ListAttendance(ctx context.Context, filter report.Filter) ([]report.Row, error) {
	q := GetQuerier(ctx, r.db)

	var sb strings.Builder
	sb.WriteString(`
		SELECT a.date, e.names, e.employee_code, a.entry_time, a.depart_time,
			   a.active_hours, a.status, a.comment
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE 1=1
	`)

	args := make([]interface{}, 0, 3)
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		fmt.Fprintf(&sb, " AND a.employee_id = $%d", len(args))
	}
	if filter.StartDate != "" && filter.EndDate != "" {
		args = append(args, filter.StartDate)
		fmt.Fprintf(&sb, " AND a.date >= $%d", len(args))
		args = append(args, filter.EndDate)
		fmt.Fprintf(&sb, " AND a.date <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY a.date DESC")

	rows, err := q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query report rows: %w", err)
	}
	defer rows.Close()

	var result []report.Row
	for rows.Next() {
		var row report.Row
		var activeHours float64
		if err := rows.Scan(
			&row.Date,
			&row.EmployeeName,
			&row.EmployeeCode,
			&row.Entry,
			&row.Depart,
			&activeHours,
			&row.Status,
			&row.Comment,
		); err != nil {
			return nil, err
		}
		row.ActiveHours = decimal.NewFromFloat(activeHours).Round(2)
		result = append(result, row)
	}
	return result, rows.Err()
}
