package approval

import "errors"

var (
	ErrApprovalNotFound  = errors.New("approval record not found")
	ErrInvalidReportType = errors.New("invalid report type")
	ErrReasonRequired    = errors.New("a reason is required to reject a report")
)
