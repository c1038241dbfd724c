package approval

import (
	"context"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
)

type ApprovalService interface {
	GetStatus(ctx context.Context, req StatusRequest) (StatusResponse, error)
	Submit(ctx context.Context, rt ReportType, req TransitionRequest) (TransitionResponse, error)
	Withdraw(ctx context.Context, rt ReportType, req TransitionRequest) (TransitionResponse, error)
	Approve(ctx context.Context, rt ReportType, req TransitionRequest) (TransitionResponse, error)
	Reject(ctx context.Context, rt ReportType, req TransitionRequest) (TransitionResponse, error)
}

// Gate applies detail-driven transitions (edit, clear) from inside the
// caller's transaction. Detail services use it so that a detail write and
// its status change commit together.
type Gate interface {
	// Lock creates the month's row if needed and locks it.
	Lock(ctx context.Context, employeeID, yearMonth string) (Record, error)
	// Apply moves rec's rt status by action and records the event.
	Apply(ctx context.Context, rec *Record, rt ReportType, action workflow.Action, actor user.Actor, reason *string) (from, to Status, err error)
}

// SubmitCheck validates a month before it may be submitted.
type SubmitCheck func(ctx context.Context, employeeID, yearMonth string) error
