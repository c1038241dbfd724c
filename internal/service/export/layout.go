package export

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/reimbursement"
	table "github.com/cmlabs-hris/kintai-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timecalc"
	"github.com/shopspring/decimal"
)

const totalLabel = "Total"

var (
	attendanceHeader = []string{
		"Employee ID", "Name", "Date", "Weekday", "Start", "End", "Rest",
		"Work style", "Absence", "Active", "Overtime", "Late night", "Legal holiday",
		"Note", "Status",
	}
	settlementHeader = []string{
		"Employee ID", "Name", "Date", "No", "Form", "Method", "Departure", "Arrival",
		"Transportation", "Cost", "Total", "Note", "Status",
	}
	reimbursementHeader = []string{
		"Employee ID", "Name", "No", "Date", "Contents", "Paid to", "Cost", "Invoice",
		"Note", "Status",
	}
)

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// hours formats a derived time with two decimals; nil stays empty.
func hours(h *float64) string {
	if h == nil {
		return ""
	}
	return decimal.NewFromFloat(*h).StringFixed(2)
}

type hourSum struct {
	rest, active, over, night, legal decimal.Decimal
}

func (h *hourSum) add(rest *float64, res timecalc.Result) {
	for _, p := range []struct {
		sum *decimal.Decimal
		v   *float64
	}{
		{&h.rest, rest},
		{&h.active, res.ActiveTime},
		{&h.over, res.OverTime},
		{&h.night, res.LateNightOverTime},
		{&h.legal, res.LegalHolidayActiveTime},
	} {
		if p.v != nil {
			*p.sum = p.sum.Add(decimal.NewFromFloat(*p.v))
		}
	}
}

func (s *ExportServiceImpl) attendanceTable(ctx context.Context, md monthData, filter *string) (table.Table, error) {
	records, err := s.AttendanceRepository.ListByPeriod(ctx, md.from, md.to)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	cal, err := s.holidays.Calendar(ctx, md.from, md.to)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	t := table.Table{Sheet: "Attendance", Header: attendanceHeader}
	var (
		current string
		sum     hourSum
	)
	flush := func() {
		if current == "" {
			return
		}
		t.Rows = append(t.Rows, []string{
			current, md.name(current), totalLabel, "", "", "", sum.rest.StringFixed(2),
			"", "", sum.active.StringFixed(2), sum.over.StringFixed(2),
			sum.night.StringFixed(2), sum.legal.StringFixed(2),
			"", md.caption(current, approval.ReportAttendance),
		})
	}

	for _, r := range records {
		if !selected(filter, r.EmployeeID) {
			continue
		}
		if r.EmployeeID != current {
			flush()
			current, sum = r.EmployeeID, hourSum{}
		}
		res := timecalc.Calculate(r.TimeInput(), s.policy, cal)
		sum.add(r.Rest, res)

		t.Rows = append(t.Rows, []string{
			r.EmployeeID, md.name(r.EmployeeID), r.Date.Format("2006-01-02"), r.Date.Weekday().String()[:3],
			str(r.StartTime), str(r.EndTime), hours(r.Rest),
			r.WorkStyle.Caption(), r.AbsentCode.Caption(),
			hours(res.ActiveTime), hours(res.OverTime), hours(res.LateNightOverTime), hours(res.LegalHolidayActiveTime),
			str(r.Note), md.caption(r.EmployeeID, approval.ReportAttendance),
		})
	}
	flush()
	return t, nil
}

func (s *ExportServiceImpl) settlementTable(ctx context.Context, md monthData, filter *string) (table.Table, error) {
	records, err := s.SettlementRepository.ListByPeriod(ctx, md.from, md.to)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to list settlements: %w", err)
	}

	t := table.Table{Sheet: "Settlement", Header: settlementHeader}
	var (
		current     string
		cost, total int64
	)
	flush := func() {
		if current == "" {
			return
		}
		t.Rows = append(t.Rows, []string{
			current, md.name(current), totalLabel, "", "", "", "", "", "",
			strconv.FormatInt(cost, 10), strconv.FormatInt(total, 10), "",
			md.caption(current, approval.ReportSettlement),
		})
	}

	for _, r := range records {
		if !selected(filter, r.EmployeeID) {
			continue
		}
		if r.EmployeeID != current {
			flush()
			current, cost, total = r.EmployeeID, 0, 0
		}
		cost += r.Cost
		total += r.Total
		t.Rows = append(t.Rows, []string{
			r.EmployeeID, md.name(r.EmployeeID), r.Date.Format("2006-01-02"), strconv.Itoa(r.DisplayNo),
			r.Form.Caption(), r.Method.Caption(), r.Departure, r.Arrival, r.Transportation,
			strconv.FormatInt(r.Cost, 10), strconv.FormatInt(r.Total, 10), str(r.Note),
			md.caption(r.EmployeeID, approval.ReportSettlement),
		})
	}
	flush()
	return t, nil
}

func (s *ExportServiceImpl) reimbursementTable(ctx context.Context, md monthData, filter *string) (table.Table, error) {
	records, err := s.ReimbursementRepository.ListByPeriod(ctx, md.from, md.to)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to list reimbursements: %w", err)
	}

	t := table.Table{Sheet: "Reimbursement", Header: reimbursementHeader}
	var (
		current string
		lines   []reimbursement.Record
	)
	flush := func() {
		if current == "" {
			return
		}
		t.Rows = append(t.Rows, []string{
			current, md.name(current), totalLabel, "", "", "",
			strconv.FormatInt(reimbursement.SumCost(lines), 10), "", "",
			md.caption(current, approval.ReportReimbursement),
		})
	}

	for _, r := range records {
		if !selected(filter, r.EmployeeID) {
			continue
		}
		if r.EmployeeID != current {
			flush()
			current, lines = r.EmployeeID, nil
		}
		lines = append(lines, r)
		invoice := "No"
		if r.InvoiceFlg {
			invoice = "Yes"
		}
		t.Rows = append(t.Rows, []string{
			r.EmployeeID, md.name(r.EmployeeID), strconv.Itoa(r.DisplayNo), r.Date.Format("2006-01-02"),
			r.Contents, r.PaidTo, strconv.FormatInt(r.Cost, 10), invoice, str(r.Note),
			md.caption(r.EmployeeID, approval.ReportReimbursement),
		})
	}
	flush()
	return t, nil
}
