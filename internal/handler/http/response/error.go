package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/dailyreport"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/settlement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, "Invalid parameters", validationErrs.ToMap())
		return
	}

	var inputErr *attendance.InputError
	if errors.As(err, &inputErr) {
		var details map[string]string
		if inputErr.Date != nil {
			details = map[string]string{"date": inputErr.Date.Format("2006-01-02")}
		}
		InputError(w, inputErr.Code, inputErr.Message(), details)
		return
	}

	switch {
	// Session
	case errors.Is(err, user.ErrActorMissing),
		errors.Is(err, user.ErrEmployeeIDClaimMissing),
		errors.Is(err, user.ErrInvalidRole):
		Unauthorized(w, "Authentication required")

	// Access
	case errors.Is(err, user.ErrNotOwnRecord):
		Forbidden(w, "Record belongs to another employee")
	case errors.Is(err, user.ErrApproverAccessRequired):
		Forbidden(w, "Approver access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, dailyreport.ErrNotAuthor):
		Forbidden(w, "Only the author can edit this section")
	case errors.Is(err, dailyreport.ErrNotReviewer):
		Forbidden(w, "Caller cannot review this section")

	// Workflow
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrInvalidState):
		Conflict(w, "Action is not allowed in the current state")

	// Request content
	case errors.Is(err, approval.ErrReasonRequired),
		errors.Is(err, dailyreport.ErrRejectReasonEmpty):
		BadRequest(w, "Invalid parameters", map[string]string{"reason": err.Error()})
	case errors.Is(err, approval.ErrInvalidReportType):
		BadRequest(w, "Unknown report type", nil)
	case errors.Is(err, attendance.ErrDateOutsideMonth):
		BadRequest(w, "Invalid parameters", map[string]string{"date": err.Error()})
	case errors.Is(err, settlement.ErrSwapDifferentDay),
		errors.Is(err, settlement.ErrSwapNotAdjacent):
		BadRequest(w, err.Error(), nil)

	// Not found
	case errors.Is(err, approval.ErrApprovalNotFound):
		NotFound(w, "Approval record not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, settlement.ErrSettlementNotFound):
		NotFound(w, "Settlement record not found")
	case errors.Is(err, reimbursement.ErrReimbursementNotFound):
		NotFound(w, "Reimbursement record not found")
	case errors.Is(err, dailyreport.ErrPostNotFound):
		NotFound(w, "Daily report not found")
	case errors.Is(err, dailyreport.ErrSectionNotFound):
		NotFound(w, "Daily report section not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
