package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/timeconnect/attendance-backend-go/internal/domain/report"
	"github.com/timeconnect/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportPDF(w http.ResponseWriter, r *http.Request)
	ExportExcel(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func filterFromQuery(r *http.Request) report.Filter {
	q := r.URL.Query()
	return report.Filter{
		EmployeeID: q.Get("employeeId"),
		StartDate:  q.Get("startDate"),
		EndDate:    q.Get("endDate"),
	}
}

func exportFilename(ext string) string {
	return fmt.Sprintf("attendance-report-%s.%s", time.Now().UTC().Format("2006-01-02"), ext)
}

// ExportPDF implements ReportHandler.
func (h *ReportHandlerImpl) ExportPDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.reportService.GeneratePDF(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.Error("Export PDF service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename("pdf")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// ExportExcel implements ReportHandler.
func (h *ReportHandlerImpl) ExportExcel(w http.ResponseWriter, r *http.Request) {
	workbook, err := h.reportService.GenerateExcel(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.Error("Export Excel service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename("xlsx")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}
