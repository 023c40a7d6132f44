package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/timeconnect/attendance-backend-go/internal/domain/attendance"
	"github.com/timeconnect/attendance-backend-go/internal/pkg/database"
)

// The attendances table carries a UNIQUE (employee_id, date) constraint,
// which backs the one-record-per-employee-per-day invariant at the storage
// layer in addition to the service-level per-key lock.
type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, entry_time, depart_time, date, active_hours, status, comment,
		   created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var activeHours float64
	err := row.Scan(
		&att.ID,
		&att.EmployeeID,
		&att.Entry,
		&att.Depart,
		&att.Date,
		&activeHours,
		&att.Status,
		&att.Comment,
		&att.CreatedAt,
		&att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.ActiveHours = decimal.NewFromFloat(activeHours).Round(2)
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, employee_id, entry_time, depart_time, date, active_hours, status, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + attendanceColumns + `
	`

	created, err := scanAttendance(q.QueryRow(ctx, query,
		uuid.NewString(),
		newAttendance.EmployeeID,
		newAttendance.Entry,
		newAttendance.Depart,
		newAttendance.Date,
		newAttendance.ActiveHours.InexactFloat64(),
		newAttendance.Status,
		newAttendance.Comment,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET depart_time = $1, active_hours = $2, status = $3, comment = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + attendanceColumns + `
	`

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		att.Depart,
		att.ActiveHours.InexactFloat64(),
		att.Status,
		att.Comment,
		att.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return updated, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		attendances = append(attendances, att)
	}
	return attendances, rows.Err()
}
