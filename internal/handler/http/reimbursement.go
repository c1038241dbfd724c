package http

import (
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
)

type ReimbursementHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type reimbursementHandlerImpl struct {
	reimbursementService reimbursement.ReimbursementService
}

func NewReimbursementHandler(reimbursementService reimbursement.ReimbursementService) ReimbursementHandler {
	return &reimbursementHandlerImpl{reimbursementService: reimbursementService}
}

// List implements ReimbursementHandler.
func (h *reimbursementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var req reimbursement.ListRequest
	if !decodeJSON(w, r, "ReimbursementList", &req) {
		return
	}

	list, err := h.reimbursementService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// Create implements ReimbursementHandler.
func (h *reimbursementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req reimbursement.CreateRequest
	if !decodeJSON(w, r, "ReimbursementCreate", &req) {
		return
	}

	list, err := h.reimbursementService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Reimbursement created", list)
}

// Update implements ReimbursementHandler.
func (h *reimbursementHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req reimbursement.UpdateRequest
	if !decodeJSON(w, r, "ReimbursementUpdate", &req) {
		return
	}

	list, err := h.reimbursementService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Reimbursement updated", list)
}

// Delete implements ReimbursementHandler.
func (h *reimbursementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	var req reimbursement.DeleteRequest
	if !decodeJSON(w, r, "ReimbursementDelete", &req) {
		return
	}

	list, err := h.reimbursementService.Delete(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Reimbursement deleted", list)
}
