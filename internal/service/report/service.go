package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/timeconnect/attendance-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const timeLayout = "15:04:05"

type reportServiceImpl struct {
	reportRepo report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &reportServiceImpl{reportRepo: reportRepo}
}

func (s *reportServiceImpl) rows(ctx context.Context, filter report.Filter) ([]report.Row, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.reportRepo.ListAttendance(ctx, filter)
}

func formatDepart(row report.Row) string {
	if row.Depart == nil || row.Depart.Equal(row.Entry) {
		return "-"
	}
	return row.Depart.Format(timeLayout)
}

// GeneratePDF implements report.ReportService.
func (s *reportServiceImpl) GeneratePDF(ctx context.Context, filter report.Filter) ([]byte, error) {
	rows, err := s.rows(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary := report.Summarize(rows)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Attendance Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Attendance Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated at "+time.Now().UTC().Format(time.RFC1123), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total records: %d", summary.TotalRecords), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total hours: %s", summary.TotalHours.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Average hours per day: %s", summary.AverageHours.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	headers := []string{"Date", "Employee", "Code", "Clock In", "Clock Out", "Hours", "Status", "Comment"}
	widths := []float64{25, 50, 22, 22, 22, 18, 25, 93}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range rows {
		// Stripe alternating rows for readability.
		fill := i%2 == 1
		pdf.SetFillColor(236, 240, 241)

		cells := []string{
			row.Date,
			row.EmployeeName,
			row.EmployeeCode,
			row.Entry.Format(timeLayout),
			formatDepart(row),
			row.ActiveHours.StringFixed(2),
			row.Status,
			row.Comment,
		}
		for j, cell := range cells {
			align := "L"
			if j != 1 && j != 7 {
				align = "C"
			}
			pdf.CellFormat(widths[j], 7, cell, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(rows) == 0 {
		pdf.CellFormat(0, 8, "No attendance records match the filter.", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateExcel implements report.ReportService.
func (s *reportServiceImpl) GenerateExcel(ctx context.Context, filter report.Filter) ([]byte, error) {
	rows, err := s.rows(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary := report.Summarize(rows)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"34495E"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	f.SetCellValue(sheet, "A1", "Attendance Report")
	f.SetCellValue(sheet, "A2", "Generated at "+time.Now().UTC().Format(time.RFC1123))
	f.SetCellValue(sheet, "A3", "Total records")
	f.SetCellValue(sheet, "B3", summary.TotalRecords)
	f.SetCellValue(sheet, "A4", "Total hours")
	f.SetCellValue(sheet, "B4", summary.TotalHours.InexactFloat64())
	f.SetCellValue(sheet, "A5", "Average hours per day")
	f.SetCellValue(sheet, "B5", summary.AverageHours.InexactFloat64())

	headers := []string{"Date", "Employee", "Code", "Clock In", "Clock Out", "Hours", "Status", "Comment"}
	const headerRow = 7
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, row := range rows {
		values := []interface{}{
			row.Date,
			row.EmployeeName,
			row.EmployeeCode,
			row.Entry.Format(timeLayout),
			formatDepart(row),
			row.ActiveHours.InexactFloat64(),
			row.Status,
			row.Comment,
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, headerRow+1+i)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "H", "H", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
