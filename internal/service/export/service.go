package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/export"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/settlement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	table "github.com/cmlabs-hris/kintai-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timecalc"
)

type ExportServiceImpl struct {
	attendance.AttendanceRepository
	settlement.SettlementRepository
	reimbursement.ReimbursementRepository
	employee.EmployeeRepository
	approvals approval.Repository
	holidays  holiday.Provider
	policy    timecalc.Policy
}

func NewExportService(
	attendanceRepo attendance.AttendanceRepository,
	settlementRepo settlement.SettlementRepository,
	reimbursementRepo reimbursement.ReimbursementRepository,
	employeeRepo employee.EmployeeRepository,
	approvalRepo approval.Repository,
	holidays holiday.Provider,
	policy timecalc.Policy,
) export.ExportService {
	return &ExportServiceImpl{
		AttendanceRepository:    attendanceRepo,
		SettlementRepository:    settlementRepo,
		ReimbursementRepository: reimbursementRepo,
		EmployeeRepository:      employeeRepo,
		approvals:               approvalRepo,
		holidays:                holidays,
		policy:                  policy,
	}
}

// monthData is what every layout needs besides its own detail rows.
type monthData struct {
	from, to time.Time
	names    map[string]string
	statuses map[string]approval.Record
}

func (m monthData) name(employeeID string) string {
	return m.names[employeeID]
}

func (m monthData) caption(employeeID string, rt approval.ReportType) string {
	rec, ok := m.statuses[employeeID]
	if !ok {
		return approval.StatusNoInput.Caption(rt)
	}
	st := rec.Status(rt)
	return st.Caption(rt)
}

// Export implements export.ExportService.
func (s *ExportServiceImpl) Export(ctx context.Context, rt approval.ReportType, req export.Request) (export.File, error) {
	if err := req.Validate(); err != nil {
		return export.File{}, err
	}
	if !rt.IsValid() {
		return export.File{}, approval.ErrInvalidReportType
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return export.File{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionReportExport) {
		return export.File{}, user.ErrInsufficientPermissions
	}

	md, err := s.load(ctx, req.YearMonth)
	if err != nil {
		return export.File{}, err
	}

	var t table.Table
	switch rt {
	case approval.ReportAttendance:
		t, err = s.attendanceTable(ctx, md, req.EmployeeID)
	case approval.ReportSettlement:
		t, err = s.settlementTable(ctx, md, req.EmployeeID)
	case approval.ReportReimbursement:
		t, err = s.reimbursementTable(ctx, md, req.EmployeeID)
	}
	if err != nil {
		return export.File{}, err
	}

	format := req.OutputFormat()
	var buf bytes.Buffer
	if err := table.Write(&buf, t, format); err != nil {
		return export.File{}, fmt.Errorf("failed to render %s export: %w", rt, err)
	}

	slog.Info("report exported",
		"report_type", rt,
		"year_month", req.YearMonth,
		"format", format,
		"rows", len(t.Rows),
		"actor_id", actor.EmployeeID,
	)
	return export.File{
		Name:        fmt.Sprintf("%s_%s%s", rt, req.YearMonth, format.Extension()),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

func (s *ExportServiceImpl) load(ctx context.Context, yearMonth string) (monthData, error) {
	from, to, err := attendance.MonthRange(yearMonth)
	if err != nil {
		return monthData{}, err
	}
	emps, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return monthData{}, fmt.Errorf("failed to list employees: %w", err)
	}
	recs, err := s.approvals.ListByYearMonth(ctx, yearMonth)
	if err != nil {
		return monthData{}, fmt.Errorf("failed to list approvals: %w", err)
	}

	md := monthData{
		from:     from,
		to:       to,
		names:    make(map[string]string, len(emps)),
		statuses: make(map[string]approval.Record, len(recs)),
	}
	for _, e := range emps {
		md.names[e.ID] = e.FullName
	}
	for _, r := range recs {
		md.statuses[r.EmployeeID] = r
	}
	return md, nil
}

func selected(filter *string, employeeID string) bool {
	return filter == nil || *filter == employeeID
}
