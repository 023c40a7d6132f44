package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/timeconnect/attendance-backend-go/internal/domain/attendance"
	"github.com/timeconnect/attendance-backend-go/internal/domain/employee"
	"github.com/timeconnect/attendance-backend-go/internal/domain/notification"
)

type attendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	dispatcher     notification.Dispatcher
	policy         attendance.Policy

	// dayLocks serializes events for the same (employee, date) so two
	// near-simultaneous requests cannot both observe "no record today" and
	// create duplicates. The unique key on the table backs this up.
	dayLocks sync.Map
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	dispatcher notification.Dispatcher,
	policy attendance.Policy,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		dispatcher:     dispatcher,
		policy:         policy,
	}
}

func (s *attendanceServiceImpl) lockDay(employeeID, date string) func() {
	key := employeeID + "/" + date
	muIface, _ := s.dayLocks.LoadOrStore(key, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// resolveEmployee accepts either an email address or an EMPxxx code.
func (s *attendanceServiceImpl) resolveEmployee(ctx context.Context, identifier string) (employee.Employee, error) {
	var (
		emp employee.Employee
		err error
	)
	if strings.Contains(identifier, "@") {
		emp, err = s.employeeRepo.GetByEmail(ctx, identifier)
	} else {
		emp, err = s.employeeRepo.GetByEmployeeCode(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to resolve employee: %w", err)
	}
	return emp, nil
}

// RecordEvent implements attendance.AttendanceService.
func (s *attendanceServiceImpl) RecordEvent(ctx context.Context, req attendance.RecordAttendanceRequest, at time.Time) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.resolveEmployee(ctx, req.EmployeeIdentifier)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at = at.UTC()
	date := at.Format(attendance.DateLayout)

	unlock := s.lockDay(emp.ID, date)
	defer unlock()

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var record attendance.Attendance
	if existing == nil {
		record, err = s.recordArrival(ctx, emp.ID, date, at, req.Comment)
	} else {
		record, err = s.recordDeparture(ctx, *existing, at, req.Comment)
	}
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.notify(emp, record)

	return attendance.NewAttendanceResponse(record), nil
}

func (s *attendanceServiceImpl) recordArrival(ctx context.Context, employeeID, date string, at time.Time, comment string) (attendance.Attendance, error) {
	status, err := s.policy.ClassifyArrival(at)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if comment == "" {
		comment = attendance.DefaultComment
	}

	// The departure timestamp starts as a placeholder equal to the entry,
	// so Departed() stays false until the second event of the day.
	depart := at
	return s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:  employeeID,
		Entry:       at,
		Depart:      &depart,
		Date:        date,
		ActiveHours: decimal.Zero,
		Status:      status,
		Comment:     comment,
	})
}

func (s *attendanceServiceImpl) recordDeparture(ctx context.Context, record attendance.Attendance, at time.Time, comment string) (attendance.Attendance, error) {
	hours := attendance.ActiveHours(record.Entry, at)

	record.Depart = &at
	record.ActiveHours = hours
	record.Status = s.policy.ClassifyDeparture(record.Status, hours)
	if comment != "" {
		record.Comment = comment
	}

	return s.attendanceRepo.Update(ctx, record)
}

// notify enqueues the attendance email without letting delivery problems
// affect the recorded attendance.
func (s *attendanceServiceImpl) notify(emp employee.Employee, record attendance.Attendance) {
	clockOut := "-"
	if record.Departed() {
		clockOut = record.Depart.Format("15:04:05")
	}

	err := s.dispatcher.EnqueueAttendance(context.Background(), notification.AttendanceEmail{
		EmployeeEmail: emp.Email,
		EmployeeName:  emp.Names,
		Date:          record.Date,
		ClockIn:       record.Entry.Format("15:04:05"),
		ClockOut:      clockOut,
		ActiveHours:   record.ActiveHours.StringFixed(2),
		Status:        string(record.Status),
	})
	if err != nil {
		slog.Warn("failed to enqueue attendance notification",
			"employee_id", emp.ID,
			"date", record.Date,
			"error", err,
		)
	}
}

// GetEmployeeAttendance implements attendance.AttendanceService.
func (s *attendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, identifier string) ([]attendance.AttendanceResponse, error) {
	emp, err := s.resolveEmployee(ctx, identifier)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.NewAttendanceResponse(record))
	}
	return responses, nil
}

// GetTodayAttendance implements attendance.AttendanceService.
func (s *attendanceServiceImpl) GetTodayAttendance(ctx context.Context, identifier string, at time.Time) (*attendance.AttendanceResponse, error) {
	emp, err := s.resolveEmployee(ctx, identifier)
	if err != nil {
		return nil, err
	}

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, at.UTC().Format(attendance.DateLayout))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	resp := attendance.NewAttendanceResponse(*record)
	return &resp, nil
}
