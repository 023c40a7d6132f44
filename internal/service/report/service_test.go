package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timeconnect/attendance-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

type fakeReportRepo struct {
	rows       []report.Row
	lastFilter report.Filter
}

func (f *fakeReportRepo) ListAttendance(_ context.Context, filter report.Filter) ([]report.Row, error) {
	f.lastFilter = filter
	return f.rows, nil
}

func sampleRows() []report.Row {
	entry := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	depart := entry.Add(9 * time.Hour)
	onlyEntry := time.Date(2026, 3, 3, 9, 15, 0, 0, time.UTC)
	return []report.Row{
		{
			Date:         "2026-03-03",
			EmployeeName: "Jane Doe",
			EmployeeCode: "EMP001",
			Entry:        onlyEntry,
			Depart:       &onlyEntry,
			ActiveHours:  decimal.Zero,
			Status:       "LATE",
			Comment:      "N/A",
		},
		{
			Date:         "2026-03-02",
			EmployeeName: "Jane Doe",
			EmployeeCode: "EMP001",
			Entry:        entry,
			Depart:       &depart,
			ActiveHours:  decimal.NewFromInt(9),
			Status:       "OVERTIME",
			Comment:      "shipped the release",
		},
	}
}

func TestGeneratePDF(t *testing.T) {
	repo := &fakeReportRepo{rows: sampleRows()}
	svc := NewReportService(repo)

	out, err := svc.GeneratePDF(context.Background(), report.Filter{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output is a PDF document")
}

func TestGeneratePDF_EmptyResult(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{})

	out, err := svc.GeneratePDF(context.Background(), report.Filter{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateExcel(t *testing.T) {
	repo := &fakeReportRepo{rows: sampleRows()}
	svc := NewReportService(repo)

	out, err := svc.GenerateExcel(context.Background(), report.Filter{
		EmployeeID: "11111111-1111-1111-1111-111111111111",
		StartDate:  "2026-03-01",
		EndDate:    "2026-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", repo.lastFilter.EmployeeID)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Attendance", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Attendance Report", title)

	total, err := f.GetCellValue("Attendance", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	status, err := f.GetCellValue("Attendance", "G9")
	require.NoError(t, err)
	assert.Equal(t, "OVERTIME", status)

	clockOut, err := f.GetCellValue("Attendance", "E8")
	require.NoError(t, err)
	assert.Equal(t, "-", clockOut, "no departure renders as a dash")
}

func TestGenerate_InvalidFilter(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{})

	_, err := svc.GeneratePDF(context.Background(), report.Filter{StartDate: "2026-03-01"})
	assert.Error(t, err, "start date without end date is rejected")

	_, err = svc.GenerateExcel(context.Background(), report.Filter{EmployeeID: "not-a-uuid"})
	assert.Error(t, err)
}
