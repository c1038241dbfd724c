package http

import (
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/dailyreport"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
)

type DailyReportHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	UpdateSection(w http.ResponseWriter, r *http.Request)
	TransitionSection(w http.ResponseWriter, r *http.Request)
}

type dailyReportHandlerImpl struct {
	dailyReportService dailyreport.DailyReportService
}

func NewDailyReportHandler(dailyReportService dailyreport.DailyReportService) DailyReportHandler {
	return &dailyReportHandlerImpl{dailyReportService: dailyReportService}
}

// List implements DailyReportHandler.
func (h *dailyReportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var req dailyreport.ListRequest
	if !decodeJSON(w, r, "DailyReportList", &req) {
		return
	}

	posts, err := h.dailyReportService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, posts)
}

// Create implements DailyReportHandler.
func (h *dailyReportHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req dailyreport.CreateRequest
	if !decodeJSON(w, r, "DailyReportCreate", &req) {
		return
	}

	post, err := h.dailyReportService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Daily report posted", post)
}

// UpdateSection implements DailyReportHandler.
func (h *dailyReportHandlerImpl) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var req dailyreport.UpdateSectionRequest
	if !decodeJSON(w, r, "DailyReportUpdateSection", &req) {
		return
	}

	section, err := h.dailyReportService.UpdateSection(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Section updated", section)
}

// TransitionSection implements DailyReportHandler.
func (h *dailyReportHandlerImpl) TransitionSection(w http.ResponseWriter, r *http.Request) {
	var req dailyreport.TransitionRequest
	if !decodeJSON(w, r, "DailyReportTransitionSection", &req) {
		return
	}

	section, err := h.dailyReportService.TransitionSection(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Section moved to "+section.Status, section)
}
