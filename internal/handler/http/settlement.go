package http

import (
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/settlement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
)

type SettlementHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Swap(w http.ResponseWriter, r *http.Request)
}

type settlementHandlerImpl struct {
	settlementService settlement.SettlementService
}

func NewSettlementHandler(settlementService settlement.SettlementService) SettlementHandler {
	return &settlementHandlerImpl{settlementService: settlementService}
}

// List implements SettlementHandler.
func (h *settlementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var req settlement.ListRequest
	if !decodeJSON(w, r, "SettlementList", &req) {
		return
	}

	list, err := h.settlementService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// Create implements SettlementHandler.
func (h *settlementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req settlement.CreateRequest
	if !decodeJSON(w, r, "SettlementCreate", &req) {
		return
	}

	rec, err := h.settlementService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Settlement created", rec)
}

// Update implements SettlementHandler.
func (h *settlementHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req settlement.UpdateRequest
	if !decodeJSON(w, r, "SettlementUpdate", &req) {
		return
	}

	rec, err := h.settlementService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settlement updated", rec)
}

// Delete implements SettlementHandler.
func (h *settlementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	var req settlement.DeleteRequest
	if !decodeJSON(w, r, "SettlementDelete", &req) {
		return
	}

	if err := h.settlementService.Delete(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settlement deleted", nil)
}

// Swap implements SettlementHandler.
func (h *settlementHandlerImpl) Swap(w http.ResponseWriter, r *http.Request) {
	var req settlement.SwapRequest
	if !decodeJSON(w, r, "SettlementSwap", &req) {
		return
	}

	recs, err := h.settlementService.Swap(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settlement order changed", recs)
}
