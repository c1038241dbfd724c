package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
)

type gate struct {
	repo approval.Repository
}

// NewGate returns the transition gate used by the detail services.
func NewGate(repo approval.Repository) approval.Gate {
	return &gate{repo: repo}
}

func (g *gate) Lock(ctx context.Context, employeeID, yearMonth string) (approval.Record, error) {
	if err := g.repo.EnsureExists(ctx, employeeID, yearMonth); err != nil {
		return approval.Record{}, fmt.Errorf("failed to create approval row: %w", err)
	}
	rec, err := g.repo.GetForUpdate(ctx, employeeID, yearMonth)
	if err != nil {
		return approval.Record{}, fmt.Errorf("failed to lock approval row: %w", err)
	}
	return rec, nil
}

func (g *gate) Apply(ctx context.Context, rec *approval.Record, rt approval.ReportType, action workflow.Action, actor user.Actor, reason *string) (approval.Status, approval.Status, error) {
	from := rec.Status(rt)
	role, err := approval.RoleFor(actor, rec.EmployeeID, action)
	if err != nil {
		return from, from, err
	}
	to, err := approval.Next(from, action, role)
	if err != nil {
		return from, from, err
	}
	// Edits inside an editable state leave no trace.
	if to == from {
		return from, to, nil
	}

	if err := g.repo.UpdateStatus(ctx, rec.EmployeeID, rec.YearMonth, rt, to); err != nil {
		return from, from, fmt.Errorf("failed to update %s status: %w", rt, err)
	}
	if err := g.repo.AddEvent(ctx, approval.Event{
		EmployeeID: rec.EmployeeID,
		YearMonth:  rec.YearMonth,
		ReportType: rt,
		Action:     string(action),
		From:       from,
		To:         to,
		ActorID:    actor.EmployeeID,
		Reason:     reason,
	}); err != nil {
		return from, from, fmt.Errorf("failed to record approval event: %w", err)
	}
	rec.SetStatus(rt, to)
	return from, to, nil
}

// LoadRecord returns the approval row of a month. Rows for the month of now
// and the month before are created on first read; other months that were
// never written read as noInput without being stored.
func LoadRecord(ctx context.Context, repo approval.Repository, employeeID, yearMonth string, now time.Time) (approval.Record, error) {
	if yearMonth == approval.YearMonthOf(now) || yearMonth == approval.PreviousYearMonth(now) {
		if err := repo.EnsureExists(ctx, employeeID, yearMonth); err != nil {
			return approval.Record{}, fmt.Errorf("failed to create approval row: %w", err)
		}
	}
	rec, err := repo.Get(ctx, employeeID, yearMonth)
	if errors.Is(err, approval.ErrApprovalNotFound) {
		return approval.NewRecord(employeeID, yearMonth), nil
	}
	if err != nil {
		return approval.Record{}, fmt.Errorf("failed to get approval row: %w", err)
	}
	return rec, nil
}
