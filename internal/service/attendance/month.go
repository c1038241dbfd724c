package attendance

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/holiday"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timecalc"
	"github.com/shopspring/decimal"
)

// buildMonth renders every calendar day of rec's month with its derived times.
func (s *AttendanceServiceImpl) buildMonth(ctx context.Context, actor user.Actor, rec approval.Record) (attendance.MonthResponse, error) {
	from, to, err := attendance.MonthRange(rec.YearMonth)
	if err != nil {
		return attendance.MonthResponse{}, err
	}
	records, err := s.AttendanceRepository.ListByEmployee(ctx, rec.EmployeeID, from, to)
	if err != nil {
		return attendance.MonthResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	cal, err := s.holidays.Calendar(ctx, from, to)
	if err != nil {
		return attendance.MonthResponse{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	byDate := make(map[string]attendance.Record, len(records))
	for _, r := range records {
		byDate[r.Date.Format("2006-01-02")] = r
	}

	status := rec.AttendanceStatus
	resp := attendance.MonthResponse{
		EmployeeID:    rec.EmployeeID,
		YearMonth:     rec.YearMonth,
		StatusCode:    string(status),
		StatusKey:     status.Key(),
		StatusCaption: status.Caption(approval.ReportAttendance),
		Actions:       approval.ActionsFor(actor, rec.EmployeeID, status),
	}

	var totals totalsBuilder
	for _, day := range holiday.MonthDays(from) {
		key := day.Format("2006-01-02")
		d := attendance.DayResponse{
			Date:           key,
			Weekday:        day.Weekday().String()[:3],
			IsBusinessDay:  holiday.IsBusinessDay(day, cal),
			IsLegalHoliday: holiday.IsLegalHoliday(day, cal),
			HolidayName:    cal.Name(day),
		}
		if r, ok := byDate[key]; ok {
			res := timecalc.Calculate(r.TimeInput(), s.policy, cal)
			d.HasRecord = true
			d.StartTime = r.StartTime
			d.EndTime = r.EndTime
			d.Rest = r.Rest
			d.WorkStyle = string(r.WorkStyle)
			d.WorkStyleCaption = r.WorkStyle.Caption()
			d.AbsentCode = string(r.AbsentCode)
			d.AbsentCaption = r.AbsentCode.Caption()
			d.Note = r.Note
			d.ActiveTime = res.ActiveTime
			d.OverTime = res.OverTime
			d.LateNightOverTime = res.LateNightOverTime
			d.LegalHolidayActiveTime = res.LegalHolidayActiveTime
			d.ErrorCode = attendance.CheckAttendanceInput(r)
			if d.ErrorCode != "" {
				resp.HasInputError = true
			}
			totals.add(r, res)
		}
		resp.Days = append(resp.Days, d)
	}
	resp.Totals = totals.response()

	if missing := attendance.MissingBusinessDays(from, records, cal); len(missing) > 0 {
		resp.BlankError = attendance.CodeMissingBusinessDay
		for _, m := range missing {
			resp.MissingDays = append(resp.MissingDays, m.Format("2006-01-02"))
		}
	}
	return resp, nil
}

// totalsBuilder sums hour values in decimal so that a month of thirds of an
// hour adds up exactly.
type totalsBuilder struct {
	active, over, lateNight, legal decimal.Decimal
	workedDays, absenceDays        int
}

func addHours(sum decimal.Decimal, h *float64) decimal.Decimal {
	if h == nil {
		return sum
	}
	return sum.Add(decimal.NewFromFloat(*h))
}

func (t *totalsBuilder) add(r attendance.Record, res timecalc.Result) {
	t.active = addHours(t.active, res.ActiveTime)
	t.over = addHours(t.over, res.OverTime)
	t.lateNight = addHours(t.lateNight, res.LateNightOverTime)
	t.legal = addHours(t.legal, res.LegalHolidayActiveTime)
	if res.ActiveTime != nil && *res.ActiveTime > 0 {
		t.workedDays++
	}
	if r.AbsentCode.IsAllDay() {
		t.absenceDays++
	}
}

func (t *totalsBuilder) response() attendance.TotalsResponse {
	return attendance.TotalsResponse{
		ActiveTime:             RoundHours(t.active),
		OverTime:               RoundHours(t.over),
		LateNightOverTime:      RoundHours(t.lateNight),
		LegalHolidayActiveTime: RoundHours(t.legal),
		WorkedDays:             t.workedDays,
		AbsenceDays:            t.absenceDays,
	}
}

// RoundHours rounds to two decimal places.
func RoundHours(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// TotalActiveTime is the month's active time in hours, rounded to two places.
func TotalActiveTime(records []attendance.Record) float64 {
	sum := decimal.Zero
	for _, r := range records {
		sum = addHours(sum, timecalc.ActiveTime(r.TimeInput()))
	}
	return RoundHours(sum)
}
