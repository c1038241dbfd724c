package approval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
)

var reportTypes = []approval.ReportType{
	approval.ReportAttendance,
	approval.ReportSettlement,
	approval.ReportReimbursement,
}

type ApprovalServiceImpl struct {
	tx database.TxRunner
	approval.Repository
	gate     approval.Gate
	notifier notification.Notifier
	checks   map[approval.ReportType]approval.SubmitCheck
	now      func() time.Time
}

// NewApprovalService wires the lifecycle actions. checks holds the extra
// validation a report type runs before it may be submitted.
func NewApprovalService(
	tx database.TxRunner,
	repo approval.Repository,
	gate approval.Gate,
	notifier notification.Notifier,
	checks map[approval.ReportType]approval.SubmitCheck,
) approval.ApprovalService {
	return &ApprovalServiceImpl{
		tx:         tx,
		Repository: repo,
		gate:       gate,
		notifier:   notifier,
		checks:     checks,
		now:        time.Now,
	}
}

// GetStatus implements approval.ApprovalService.
func (s *ApprovalServiceImpl) GetStatus(ctx context.Context, req approval.StatusRequest) (approval.StatusResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return approval.StatusResponse{}, err
	}
	if !actor.CanAccess(req.EmployeeID) {
		return approval.StatusResponse{}, user.ErrNotOwnRecord
	}

	rec, err := LoadRecord(ctx, s.Repository, req.EmployeeID, req.YearMonth, s.now())
	if err != nil {
		return approval.StatusResponse{}, err
	}
	events, err := s.Repository.ListEvents(ctx, req.EmployeeID, req.YearMonth)
	if err != nil {
		return approval.StatusResponse{}, fmt.Errorf("failed to list approval events: %w", err)
	}

	resp := approval.StatusResponse{
		EmployeeID:  rec.EmployeeID,
		YearMonth:   rec.YearMonth,
		TotalActive: rec.TotalActive,
		Reports:     make([]approval.ReportStatusResponse, 0, len(reportTypes)),
		History:     make([]approval.EventResponse, 0, len(events)),
	}
	for _, rt := range reportTypes {
		st := rec.Status(rt)
		resp.Reports = append(resp.Reports, approval.ReportStatusResponse{
			ReportType: rt,
			Code:       string(st),
			Key:        st.Key(),
			Caption:    st.Caption(rt),
			Actions:    approval.ActionsFor(actor, rec.EmployeeID, st),
		})
	}
	for _, e := range events {
		resp.History = append(resp.History, approval.EventResponse{
			ReportType: e.ReportType,
			Action:     e.Action,
			From:       e.From.Key(),
			To:         e.To.Key(),
			ActorID:    e.ActorID,
			Reason:     e.Reason,
			CreatedAt:  e.CreatedAt,
		})
	}
	return resp, nil
}

// Submit implements approval.ApprovalService. A report returned for
// correction is resubmitted.
func (s *ApprovalServiceImpl) Submit(ctx context.Context, rt approval.ReportType, req approval.TransitionRequest) (approval.TransitionResponse, error) {
	return s.transition(ctx, rt, req, approval.SubmitAction)
}

// Withdraw implements approval.ApprovalService.
func (s *ApprovalServiceImpl) Withdraw(ctx context.Context, rt approval.ReportType, req approval.TransitionRequest) (approval.TransitionResponse, error) {
	return s.transition(ctx, rt, req, fixed(approval.ActionWithdraw))
}

// Approve implements approval.ApprovalService.
func (s *ApprovalServiceImpl) Approve(ctx context.Context, rt approval.ReportType, req approval.TransitionRequest) (approval.TransitionResponse, error) {
	return s.transition(ctx, rt, req, fixed(approval.ActionApprove))
}

// Reject implements approval.ApprovalService.
func (s *ApprovalServiceImpl) Reject(ctx context.Context, rt approval.ReportType, req approval.TransitionRequest) (approval.TransitionResponse, error) {
	if req.Reason == nil || strings.TrimSpace(*req.Reason) == "" {
		return approval.TransitionResponse{}, approval.ErrReasonRequired
	}
	return s.transition(ctx, rt, req, fixed(approval.ActionReject))
}

func fixed(a workflow.Action) func(approval.Status) workflow.Action {
	return func(approval.Status) workflow.Action { return a }
}

func (s *ApprovalServiceImpl) transition(
	ctx context.Context,
	rt approval.ReportType,
	req approval.TransitionRequest,
	pick func(approval.Status) workflow.Action,
) (approval.TransitionResponse, error) {
	if !rt.IsValid() {
		return approval.TransitionResponse{}, approval.ErrInvalidReportType
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return approval.TransitionResponse{}, err
	}

	var (
		action   workflow.Action
		from, to approval.Status
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rec, err := s.gate.Lock(ctx, req.EmployeeID, req.YearMonth)
		if err != nil {
			return err
		}
		action = pick(rec.Status(rt))

		if action == approval.ActionSubmit || action == approval.ActionResubmit {
			// Ownership and state are settled before the content is checked.
			role, err := approval.RoleFor(actor, rec.EmployeeID, action)
			if err != nil {
				return err
			}
			if _, err := approval.Next(rec.Status(rt), action, role); err != nil {
				return err
			}
			if check, ok := s.checks[rt]; ok {
				if err := check(ctx, req.EmployeeID, req.YearMonth); err != nil {
					return err
				}
			}
		}

		from, to, err = s.gate.Apply(ctx, &rec, rt, action, actor, req.Reason)
		return err
	})
	if err != nil {
		return approval.TransitionResponse{}, err
	}

	slog.Info("report transition",
		"employee_id", req.EmployeeID,
		"year_month", req.YearMonth,
		"report_type", rt,
		"action", action,
		"from", from.Key(),
		"to", to.Key(),
		"actor_id", actor.EmployeeID,
	)
	s.notify(ctx, rt, req, action, to)

	return approval.TransitionResponse{
		EmployeeID: req.EmployeeID,
		YearMonth:  req.YearMonth,
		ReportType: rt,
		From:       from.Key(),
		To:         to.Key(),
		Caption:    to.Caption(rt),
	}, nil
}

// notify runs after commit. Delivery failures never undo a transition.
func (s *ApprovalServiceImpl) notify(ctx context.Context, rt approval.ReportType, req approval.TransitionRequest, action workflow.Action, to approval.Status) {
	if s.notifier == nil {
		return
	}
	if approval.NotifiesAdmins(to) {
		s.notifier.Notify(ctx, notification.Message{
			Type:       notification.TypeReportResubmitted,
			Audience:   notification.AudienceAdmins,
			EmployeeID: req.EmployeeID,
			Text: fmt.Sprintf("%s report of %s for %s was resubmitted for approval.",
				rt.Label(), req.EmployeeID, formatYearMonth(req.YearMonth)),
		})
	}
	if approval.NotifiesEmployee(action) {
		reason := ""
		if req.Reason != nil {
			reason = *req.Reason
		}
		s.notifier.Notify(ctx, notification.Message{
			Type:       notification.TypeReportRejected,
			Audience:   notification.AudienceEmployee,
			EmployeeID: req.EmployeeID,
			Text: fmt.Sprintf("Your %s report for %s was returned for correction.\nReason: %s",
				strings.ToLower(rt.Label()), formatYearMonth(req.YearMonth), reason),
		})
	}
}

// formatYearMonth renders 202410 as 2024/10.
func formatYearMonth(ym string) string {
	if len(ym) != 6 {
		return ym
	}
	return ym[:4] + "/" + ym[4:]
}
