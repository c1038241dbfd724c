package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/settlement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	approvalsvc "github.com/cmlabs-hris/kintai-backend-go/internal/service/approval"
)

type SettlementServiceImpl struct {
	tx database.TxRunner
	settlement.SettlementRepository
	approvals approval.Repository
	gate      approval.Gate
	now       func() time.Time
}

func NewSettlementService(
	tx database.TxRunner,
	settlementRepo settlement.SettlementRepository,
	approvalRepo approval.Repository,
	gate approval.Gate,
) settlement.SettlementService {
	return &SettlementServiceImpl{
		tx:                   tx,
		SettlementRepository: settlementRepo,
		approvals:            approvalRepo,
		gate:                 gate,
		now:                  time.Now,
	}
}

func monthRange(yearMonth string) (time.Time, time.Time) {
	from, _ := time.Parse("200601", yearMonth)
	return from, from.AddDate(0, 1, 0)
}

// List implements settlement.SettlementService.
func (s *SettlementServiceImpl) List(ctx context.Context, req settlement.ListRequest) (settlement.ListResponse, error) {
	if err := req.Validate(); err != nil {
		return settlement.ListResponse{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return settlement.ListResponse{}, err
	}
	if !actor.CanAccess(req.EmployeeID) {
		return settlement.ListResponse{}, user.ErrNotOwnRecord
	}

	rec, err := approvalsvc.LoadRecord(ctx, s.approvals, req.EmployeeID, req.YearMonth, s.now())
	if err != nil {
		return settlement.ListResponse{}, err
	}
	from, to := monthRange(req.YearMonth)
	records, err := s.SettlementRepository.ListByEmployee(ctx, req.EmployeeID, from, to)
	if err != nil {
		return settlement.ListResponse{}, fmt.Errorf("failed to list settlements: %w", err)
	}

	st := rec.SettlementStatus
	resp := settlement.ListResponse{
		EmployeeID:    req.EmployeeID,
		YearMonth:     req.YearMonth,
		StatusCode:    string(st),
		StatusKey:     st.Key(),
		StatusCaption: st.Caption(approval.ReportSettlement),
		Actions:       approval.ActionsFor(actor, req.EmployeeID, st),
		Records:       make([]settlement.RecordResponse, 0, len(records)),
		Total:         settlement.SumTotal(records),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, settlement.ToResponse(r))
	}
	return resp, nil
}

// Create implements settlement.SettlementService. The line is appended
// after the other lines of its day.
func (s *SettlementServiceImpl) Create(ctx context.Context, req settlement.CreateRequest) (settlement.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return settlement.RecordResponse{}, err
	}
	actor, err := s.owner(ctx, req.EmployeeID)
	if err != nil {
		return settlement.RecordResponse{}, err
	}

	r := req.ToRecord()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.edit(ctx, actor, req.EmployeeID, settlement.YearMonth(r.Date)); err != nil {
			return err
		}
		sameDay, err := s.SettlementRepository.ListByDay(ctx, req.EmployeeID, r.Date)
		if err != nil {
			return fmt.Errorf("failed to list settlements of day: %w", err)
		}
		r.DisplayNo = settlement.NextDisplayNo(sameDay)
		r, err = s.SettlementRepository.Create(ctx, r)
		if err != nil {
			return fmt.Errorf("failed to create settlement: %w", err)
		}
		return nil
	})
	if err != nil {
		return settlement.RecordResponse{}, err
	}
	return settlement.ToResponse(r), nil
}

// Update implements settlement.SettlementService. Moving a line to another
// day appends it there and closes the gap it left.
func (s *SettlementServiceImpl) Update(ctx context.Context, req settlement.UpdateRequest) (settlement.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return settlement.RecordResponse{}, err
	}
	actor, err := s.owner(ctx, req.EmployeeID)
	if err != nil {
		return settlement.RecordResponse{}, err
	}

	var r settlement.Record
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err = s.get(ctx, req.TNo, req.EmployeeID)
		if err != nil {
			return err
		}
		oldDate := r.Date
		req.Apply(&r)
		if settlement.YearMonth(r.Date) != settlement.YearMonth(oldDate) {
			return validator.ValidationErrors{{Field: "date", Message: "date must stay within the line's month"}}
		}
		if err := s.edit(ctx, actor, req.EmployeeID, settlement.YearMonth(oldDate)); err != nil {
			return err
		}

		if r.Date.Equal(oldDate) {
			if err := s.SettlementRepository.Update(ctx, r); err != nil {
				return fmt.Errorf("failed to update settlement: %w", err)
			}
			return nil
		}

		newDay, err := s.SettlementRepository.ListByDay(ctx, req.EmployeeID, r.Date)
		if err != nil {
			return fmt.Errorf("failed to list settlements of day: %w", err)
		}
		r.DisplayNo = settlement.NextDisplayNo(newDay)
		if err := s.SettlementRepository.Update(ctx, r); err != nil {
			return fmt.Errorf("failed to update settlement: %w", err)
		}
		return s.compactDay(ctx, req.EmployeeID, oldDate)
	})
	if err != nil {
		return settlement.RecordResponse{}, err
	}
	return settlement.ToResponse(r), nil
}

// Delete implements settlement.SettlementService. Deleting the month's last
// line returns the report to noInput.
func (s *SettlementServiceImpl) Delete(ctx context.Context, req settlement.DeleteRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	actor, err := s.owner(ctx, req.EmployeeID)
	if err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := s.get(ctx, req.TNo, req.EmployeeID)
		if err != nil {
			return err
		}
		yearMonth := settlement.YearMonth(r.Date)
		rec, err := s.gate.Lock(ctx, req.EmployeeID, yearMonth)
		if err != nil {
			return err
		}
		if _, _, err := s.gate.Apply(ctx, &rec, approval.ReportSettlement, approval.ActionEdit, actor, nil); err != nil {
			return err
		}

		if err := s.SettlementRepository.Delete(ctx, r.TNo); err != nil {
			return fmt.Errorf("failed to delete settlement: %w", err)
		}
		if err := s.compactDay(ctx, req.EmployeeID, r.Date); err != nil {
			return err
		}

		from, to := monthRange(yearMonth)
		left, err := s.SettlementRepository.CountByEmployee(ctx, req.EmployeeID, from, to)
		if err != nil {
			return fmt.Errorf("failed to count settlements: %w", err)
		}
		if left == 0 {
			if _, _, err := s.gate.Apply(ctx, &rec, approval.ReportSettlement, approval.ActionClear, actor, nil); err != nil {
				return err
			}
		}
		return nil
	})
}

// Swap implements settlement.SettlementService.
func (s *SettlementServiceImpl) Swap(ctx context.Context, req settlement.SwapRequest) ([]settlement.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	actor, err := s.owner(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	var a, b settlement.Record
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if a, err = s.get(ctx, req.TNoA, req.EmployeeID); err != nil {
			return err
		}
		if b, err = s.get(ctx, req.TNoB, req.EmployeeID); err != nil {
			return err
		}
		if err := settlement.Swap(&a, &b); err != nil {
			return err
		}
		if err := s.edit(ctx, actor, req.EmployeeID, settlement.YearMonth(a.Date)); err != nil {
			return err
		}
		if err := s.SettlementRepository.UpdateDisplayNos(ctx, []settlement.Record{a, b}); err != nil {
			return fmt.Errorf("failed to swap settlements: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []settlement.RecordResponse{settlement.ToResponse(a), settlement.ToResponse(b)}, nil
}

func (s *SettlementServiceImpl) owner(ctx context.Context, employeeID string) (user.Actor, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return user.Actor{}, err
	}
	if !actor.IsSelf(employeeID) {
		return user.Actor{}, user.ErrNotOwnRecord
	}
	return actor, nil
}

// edit locks the month and moves the report to input, or fails when the
// report is frozen.
func (s *SettlementServiceImpl) edit(ctx context.Context, actor user.Actor, employeeID, yearMonth string) error {
	rec, err := s.gate.Lock(ctx, employeeID, yearMonth)
	if err != nil {
		return err
	}
	_, _, err = s.gate.Apply(ctx, &rec, approval.ReportSettlement, approval.ActionEdit, actor, nil)
	return err
}

// get loads a line and hides lines of other employees.
func (s *SettlementServiceImpl) get(ctx context.Context, tno int64, employeeID string) (settlement.Record, error) {
	r, err := s.SettlementRepository.GetByTNo(ctx, tno)
	if err != nil {
		return settlement.Record{}, err
	}
	if r.EmployeeID != employeeID {
		return settlement.Record{}, settlement.ErrSettlementNotFound
	}
	return r, nil
}

func (s *SettlementServiceImpl) compactDay(ctx context.Context, employeeID string, date time.Time) error {
	remaining, err := s.SettlementRepository.ListByDay(ctx, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to list settlements of day: %w", err)
	}
	changed := settlement.CompactDay(remaining)
	if len(changed) == 0 {
		return nil
	}
	if err := s.SettlementRepository.UpdateDisplayNos(ctx, changed); err != nil {
		return fmt.Errorf("failed to renumber settlements: %w", err)
	}
	return nil
}
