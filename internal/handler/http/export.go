package http

import (
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/export"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExportHandler interface {
	Export(w http.ResponseWriter, r *http.Request)
}

type exportHandlerImpl struct {
	exportService export.ExportService
}

func NewExportHandler(exportService export.ExportService) ExportHandler {
	return &exportHandlerImpl{exportService: exportService}
}

// Export implements ExportHandler. The report type comes from the path.
func (h *exportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	rt := approval.ReportType(chi.URLParam(r, "reportType"))

	var req export.Request
	if !decodeJSON(w, r, "Export", &req) {
		return
	}

	file, err := h.exportService.Export(r.Context(), rt, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.File(w, file.Name, file.ContentType, file.Body)
}
