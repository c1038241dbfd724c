package reimbursement

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	approvalsvc "github.com/cmlabs-hris/kintai-backend-go/internal/service/approval"
)

type ReimbursementServiceImpl struct {
	tx database.TxRunner
	reimbursement.ReimbursementRepository
	approvals approval.Repository
	gate      approval.Gate
	now       func() time.Time
}

func NewReimbursementService(
	tx database.TxRunner,
	reimbursementRepo reimbursement.ReimbursementRepository,
	approvalRepo approval.Repository,
	gate approval.Gate,
) reimbursement.ReimbursementService {
	return &ReimbursementServiceImpl{
		tx:                      tx,
		ReimbursementRepository: reimbursementRepo,
		approvals:               approvalRepo,
		gate:                    gate,
		now:                     time.Now,
	}
}

func monthRange(yearMonth string) (time.Time, time.Time) {
	from, _ := time.Parse("200601", yearMonth)
	return from, from.AddDate(0, 1, 0)
}

func yearMonthOf(d time.Time) string {
	return d.Format("200601")
}

// List implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) List(ctx context.Context, req reimbursement.ListRequest) (reimbursement.ListResponse, error) {
	if err := req.Validate(); err != nil {
		return reimbursement.ListResponse{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return reimbursement.ListResponse{}, err
	}
	if !actor.CanAccess(req.EmployeeID) {
		return reimbursement.ListResponse{}, user.ErrNotOwnRecord
	}
	return s.list(ctx, actor, req.EmployeeID, req.YearMonth)
}

func (s *ReimbursementServiceImpl) list(ctx context.Context, actor user.Actor, employeeID, yearMonth string) (reimbursement.ListResponse, error) {
	rec, err := approvalsvc.LoadRecord(ctx, s.approvals, employeeID, yearMonth, s.now())
	if err != nil {
		return reimbursement.ListResponse{}, err
	}
	from, to := monthRange(yearMonth)
	records, err := s.ReimbursementRepository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return reimbursement.ListResponse{}, fmt.Errorf("failed to list reimbursements: %w", err)
	}

	st := rec.ReimbursementStatus
	resp := reimbursement.ListResponse{
		EmployeeID:    employeeID,
		YearMonth:     yearMonth,
		StatusCode:    string(st),
		StatusKey:     st.Key(),
		StatusCaption: st.Caption(approval.ReportReimbursement),
		Actions:       approval.ActionsFor(actor, employeeID, st),
		Records:       make([]reimbursement.RecordResponse, 0, len(records)),
		Total:         reimbursement.SumCost(records),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, reimbursement.ToResponse(r))
	}
	return resp, nil
}

// Create implements reimbursement.ReimbursementService. The new lines are
// merged into the month and the whole month is renumbered.
func (s *ReimbursementServiceImpl) Create(ctx context.Context, req reimbursement.CreateRequest) (reimbursement.ListResponse, error) {
	if err := req.Validate(); err != nil {
		return reimbursement.ListResponse{}, err
	}
	actor, err := s.owner(ctx, req.EmployeeID)
	if err != nil {
		return reimbursement.ListResponse{}, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.edit(ctx, actor, req.EmployeeID, req.YearMonth); err != nil {
			return err
		}
		from, to := monthRange(req.YearMonth)
		existing, err := s.ReimbursementRepository.ListByEmployee(ctx, req.EmployeeID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list reimbursements: %w", err)
		}
		return s.persistOrder(ctx, existing, reimbursement.RenumberMonth(existing, req.ToRecords()))
	})
	if err != nil {
		return reimbursement.ListResponse{}, err
	}
	return s.list(ctx, actor, req.EmployeeID, req.YearMonth)
}

// Update implements reimbursement.ReimbursementService. A date change
// re-sorts the month.
func (s *ReimbursementServiceImpl) Update(ctx context.Context, req reimbursement.UpdateRequest) (reimbursement.ListResponse, error) {
	if err := req.Validate(); err != nil {
		return reimbursement.ListResponse{}, err
	}
	actor, err := s.owner(ctx, req.EmployeeID)
	if err != nil {
		return reimbursement.ListResponse{}, err
	}

	var yearMonth string
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := s.get(ctx, req.TNo, req.EmployeeID)
		if err != nil {
			return err
		}
		oldDate := r.Date
		yearMonth = yearMonthOf(oldDate)
		req.Apply(&r)
		if yearMonthOf(r.Date) != yearMonth {
			return validator.ValidationErrors{{Field: "line.date", Message: "date must stay within the line's month"}}
		}
		if err := s.edit(ctx, actor, req.EmployeeID, yearMonth); err != nil {
			return err
		}
		if err := s.ReimbursementRepository.Update(ctx, r); err != nil {
			return fmt.Errorf("failed to update reimbursement: %w", err)
		}
		if r.Date.Equal(oldDate) {
			return nil
		}

		from, to := monthRange(yearMonth)
		all, err := s.ReimbursementRepository.ListByEmployee(ctx, req.EmployeeID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list reimbursements: %w", err)
		}
		return s.persistOrder(ctx, all, reimbursement.RenumberMonth(all, nil))
	})
	if err != nil {
		return reimbursement.ListResponse{}, err
	}
	return s.list(ctx, actor, req.EmployeeID, yearMonth)
}

// Delete implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) Delete(ctx context.Context, req reimbursement.DeleteRequest) (reimbursement.ListResponse, error) {
	if err := req.Validate(); err != nil {
		return reimbursement.ListResponse{}, err
	}
	actor, err := s.owner(ctx, req.EmployeeID)
	if err != nil {
		return reimbursement.ListResponse{}, err
	}

	var yearMonth string
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := s.get(ctx, req.TNo, req.EmployeeID)
		if err != nil {
			return err
		}
		yearMonth = yearMonthOf(r.Date)
		rec, err := s.gate.Lock(ctx, req.EmployeeID, yearMonth)
		if err != nil {
			return err
		}
		if _, _, err := s.gate.Apply(ctx, &rec, approval.ReportReimbursement, approval.ActionEdit, actor, nil); err != nil {
			return err
		}
		if err := s.ReimbursementRepository.Delete(ctx, r.TNo); err != nil {
			return fmt.Errorf("failed to delete reimbursement: %w", err)
		}

		from, to := monthRange(yearMonth)
		remaining, err := s.ReimbursementRepository.ListByEmployee(ctx, req.EmployeeID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list reimbursements: %w", err)
		}
		if len(remaining) == 0 {
			_, _, err := s.gate.Apply(ctx, &rec, approval.ReportReimbursement, approval.ActionClear, actor, nil)
			return err
		}
		if changed := reimbursement.CompactMonth(remaining); len(changed) > 0 {
			if err := s.ReimbursementRepository.UpdateDisplayNos(ctx, changed); err != nil {
				return fmt.Errorf("failed to renumber reimbursements: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return reimbursement.ListResponse{}, err
	}
	return s.list(ctx, actor, req.EmployeeID, yearMonth)
}

// persistOrder inserts the new lines of ordered and stores the positions of
// the existing lines that moved.
func (s *ReimbursementServiceImpl) persistOrder(ctx context.Context, before, ordered []reimbursement.Record) error {
	was := make(map[int64]int, len(before))
	for _, r := range before {
		was[r.TNo] = r.DisplayNo
	}

	var moved []reimbursement.Record
	for _, r := range ordered {
		if r.IsNew() {
			if _, err := s.ReimbursementRepository.Create(ctx, r); err != nil {
				return fmt.Errorf("failed to create reimbursement: %w", err)
			}
			continue
		}
		if was[r.TNo] != r.DisplayNo {
			moved = append(moved, r)
		}
	}
	if len(moved) == 0 {
		return nil
	}
	if err := s.ReimbursementRepository.UpdateDisplayNos(ctx, moved); err != nil {
		return fmt.Errorf("failed to renumber reimbursements: %w", err)
	}
	return nil
}

func (s *ReimbursementServiceImpl) owner(ctx context.Context, employeeID string) (user.Actor, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return user.Actor{}, err
	}
	if !actor.IsSelf(employeeID) {
		return user.Actor{}, user.ErrNotOwnRecord
	}
	return actor, nil
}

func (s *ReimbursementServiceImpl) edit(ctx context.Context, actor user.Actor, employeeID, yearMonth string) error {
	rec, err := s.gate.Lock(ctx, employeeID, yearMonth)
	if err != nil {
		return err
	}
	_, _, err = s.gate.Apply(ctx, &rec, approval.ReportReimbursement, approval.ActionEdit, actor, nil)
	return err
}

func (s *ReimbursementServiceImpl) get(ctx context.Context, tno int64, employeeID string) (reimbursement.Record, error) {
	r, err := s.ReimbursementRepository.GetByTNo(ctx, tno)
	if err != nil {
		return reimbursement.Record{}, err
	}
	if r.EmployeeID != employeeID {
		return reimbursement.Record{}, reimbursement.ErrReimbursementNotFound
	}
	return r, nil
}
