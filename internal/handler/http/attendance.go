package http

import (
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Month(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Month implements AttendanceHandler.
func (h *attendanceHandlerImpl) Month(w http.ResponseWriter, r *http.Request) {
	var req attendance.MonthRequest
	if !decodeJSON(w, r, "AttendanceMonth", &req) {
		return
	}

	month, err := h.attendanceService.GetMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, month)
}

// Save implements AttendanceHandler.
func (h *attendanceHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req attendance.SaveRequest
	if !decodeJSON(w, r, "AttendanceSave", &req) {
		return
	}

	month, err := h.attendanceService.Save(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance saved", month)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	var req attendance.DeleteRequest
	if !decodeJSON(w, r, "AttendanceDelete", &req) {
		return
	}

	month, err := h.attendanceService.Delete(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance deleted", month)
}
