package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timecalc"
	approvalsvc "github.com/cmlabs-hris/kintai-backend-go/internal/service/approval"
)

type AttendanceServiceImpl struct {
	tx database.TxRunner
	attendance.AttendanceRepository
	approvals approval.Repository
	gate      approval.Gate
	holidays  holiday.Provider
	policy    timecalc.Policy
	now       func() time.Time
}

func NewAttendanceService(
	tx database.TxRunner,
	attendanceRepo attendance.AttendanceRepository,
	approvalRepo approval.Repository,
	gate approval.Gate,
	holidays holiday.Provider,
	policy timecalc.Policy,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		approvals:            approvalRepo,
		gate:                 gate,
		holidays:             holidays,
		policy:               policy,
		now:                  time.Now,
	}
}

// GetMonth implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonth(ctx context.Context, req attendance.MonthRequest) (attendance.MonthResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthResponse{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return attendance.MonthResponse{}, err
	}
	if !actor.CanAccess(req.EmployeeID) {
		return attendance.MonthResponse{}, user.ErrNotOwnRecord
	}

	rec, err := approvalsvc.LoadRecord(ctx, s.approvals, req.EmployeeID, req.YearMonth, s.now())
	if err != nil {
		return attendance.MonthResponse{}, err
	}
	return s.buildMonth(ctx, actor, rec)
}

// Save implements attendance.AttendanceService. Blank rows delete the day.
func (s *AttendanceServiceImpl) Save(ctx context.Context, req attendance.SaveRequest) (attendance.MonthResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthResponse{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return attendance.MonthResponse{}, err
	}
	if !actor.IsSelf(req.EmployeeID) {
		return attendance.MonthResponse{}, user.ErrNotOwnRecord
	}

	var upserts, blanks []attendance.Record
	for _, in := range req.Records {
		r := in.ToRecord(req.EmployeeID)
		if r.IsBlank() {
			blanks = append(blanks, r)
		} else {
			upserts = append(upserts, r)
		}
	}

	var rec approval.Record
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rec, err = s.gate.Lock(ctx, req.EmployeeID, req.YearMonth)
		if err != nil {
			return err
		}
		if _, _, err := s.gate.Apply(ctx, &rec, approval.ReportAttendance, approval.ActionEdit, actor, nil); err != nil {
			return err
		}

		if len(upserts) > 0 {
			if err := s.AttendanceRepository.UpsertBatch(ctx, upserts); err != nil {
				return fmt.Errorf("failed to save attendance: %w", err)
			}
		}
		for _, b := range blanks {
			err := s.AttendanceRepository.Delete(ctx, b.EmployeeID, b.Date)
			if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
				return fmt.Errorf("failed to delete attendance: %w", err)
			}
		}
		return s.afterWrite(ctx, &rec, actor)
	})
	if err != nil {
		return attendance.MonthResponse{}, err
	}

	slog.Info("attendance saved", "employee_id", req.EmployeeID, "year_month", req.YearMonth,
		"upserted", len(upserts), "cleared", len(blanks))
	return s.buildMonth(ctx, actor, rec)
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, req attendance.DeleteRequest) (attendance.MonthResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthResponse{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return attendance.MonthResponse{}, err
	}
	if !actor.IsSelf(req.EmployeeID) {
		return attendance.MonthResponse{}, user.ErrNotOwnRecord
	}
	date, _ := time.Parse("2006-01-02", req.Date)
	yearMonth := approval.YearMonthOf(date)

	var rec approval.Record
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rec, err = s.gate.Lock(ctx, req.EmployeeID, yearMonth)
		if err != nil {
			return err
		}
		if _, _, err := s.gate.Apply(ctx, &rec, approval.ReportAttendance, approval.ActionEdit, actor, nil); err != nil {
			return err
		}
		if err := s.AttendanceRepository.Delete(ctx, req.EmployeeID, date); err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return err
			}
			return fmt.Errorf("failed to delete attendance: %w", err)
		}
		return s.afterWrite(ctx, &rec, actor)
	})
	if err != nil {
		return attendance.MonthResponse{}, err
	}
	return s.buildMonth(ctx, actor, rec)
}

// afterWrite clears the month's status when no record is left and stores
// the month's active-time total on the approval row.
func (s *AttendanceServiceImpl) afterWrite(ctx context.Context, rec *approval.Record, actor user.Actor) error {
	from, to, err := attendance.MonthRange(rec.YearMonth)
	if err != nil {
		return err
	}
	records, err := s.AttendanceRepository.ListByEmployee(ctx, rec.EmployeeID, from, to)
	if err != nil {
		return fmt.Errorf("failed to list attendance: %w", err)
	}
	if len(records) == 0 && rec.AttendanceStatus != approval.StatusNoInput {
		if _, _, err := s.gate.Apply(ctx, rec, approval.ReportAttendance, approval.ActionClear, actor, nil); err != nil {
			return err
		}
	}

	total := TotalActiveTime(records)
	if err := s.approvals.UpdateTotalActive(ctx, rec.EmployeeID, rec.YearMonth, total); err != nil {
		return fmt.Errorf("failed to update total active time: %w", err)
	}
	rec.TotalActive = total
	return nil
}

// ValidateForSubmit implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ValidateForSubmit(ctx context.Context, employeeID, yearMonth string) error {
	from, to, err := attendance.MonthRange(yearMonth)
	if err != nil {
		return err
	}
	records, err := s.AttendanceRepository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return fmt.Errorf("failed to list attendance: %w", err)
	}
	for _, r := range records {
		if code := attendance.CheckAttendanceInput(r); code != "" {
			date := r.Date
			return &attendance.InputError{Code: code, Date: &date}
		}
	}

	cal, err := s.holidays.Calendar(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to load holidays: %w", err)
	}
	if missing := attendance.MissingBusinessDays(from, records, cal); len(missing) > 0 {
		return &attendance.InputError{Code: attendance.CodeMissingBusinessDay, Date: &missing[0]}
	}
	return nil
}
