package http

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
)

// ApprovalHandler serves the monthly lifecycle of one report type per route.
type ApprovalHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	Submit(rt approval.ReportType) http.HandlerFunc
	Withdraw(rt approval.ReportType) http.HandlerFunc
	Approve(rt approval.ReportType) http.HandlerFunc
	Reject(rt approval.ReportType) http.HandlerFunc
}

type approvalHandlerImpl struct {
	approvalService approval.ApprovalService
}

func NewApprovalHandler(approvalService approval.ApprovalService) ApprovalHandler {
	return &approvalHandlerImpl{approvalService: approvalService}
}

// Status implements ApprovalHandler.
func (h *approvalHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	var req approval.StatusRequest
	if !decodeJSON(w, r, "ApprovalStatus", &req) {
		return
	}

	status, err := h.approvalService.GetStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}

type transitionFunc func(ctx context.Context, rt approval.ReportType, req approval.TransitionRequest) (approval.TransitionResponse, error)

func (h *approvalHandlerImpl) transition(rt approval.ReportType, op, message string, fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req approval.TransitionRequest
		if !decodeJSON(w, r, op, &req) {
			return
		}

		result, err := fn(r.Context(), rt, req)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, rt.Label()+" "+message, result)
	}
}

// Submit implements ApprovalHandler.
func (h *approvalHandlerImpl) Submit(rt approval.ReportType) http.HandlerFunc {
	return h.transition(rt, "Submit", "submitted", h.approvalService.Submit)
}

// Withdraw implements ApprovalHandler.
func (h *approvalHandlerImpl) Withdraw(rt approval.ReportType) http.HandlerFunc {
	return h.transition(rt, "Withdraw", "withdrawn", h.approvalService.Withdraw)
}

// Approve implements ApprovalHandler.
func (h *approvalHandlerImpl) Approve(rt approval.ReportType) http.HandlerFunc {
	return h.transition(rt, "Approve", "approved", h.approvalService.Approve)
}

// Reject implements ApprovalHandler.
func (h *approvalHandlerImpl) Reject(rt approval.ReportType) http.HandlerFunc {
	return h.transition(rt, "Reject", "returned for correction", h.approvalService.Reject)
}
