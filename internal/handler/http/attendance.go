package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/timeconnect/attendance-backend-go/internal/domain/attendance"
	"github.com/timeconnect/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	GetEmployeeAttendance(w http.ResponseWriter, r *http.Request)
	GetTodayAttendance(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Record implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var recordReq attendance.RecordAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&recordReq); err != nil {
		slog.Error("Record attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.RecordEvent(r.Context(), recordReq, time.Now().UTC())
	if err != nil {
		slog.Error("Record attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded successfully", resp)
}

// GetEmployeeAttendance implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	records, err := h.attendanceService.GetEmployeeAttendance(r.Context(), identifier)
	if err != nil {
		slog.Error("Get employee attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetTodayAttendance implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetTodayAttendance(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	record, err := h.attendanceService.GetTodayAttendance(r.Context(), identifier, time.Now().UTC())
	if err != nil {
		slog.Error("Get today attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if record == nil {
		response.SuccessWithMessage(w, "No attendance record for today", nil)
		return
	}
	response.Success(w, record)
}
