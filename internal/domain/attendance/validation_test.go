package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/holiday"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timecalc"
	"github.com/stretchr/testify/assert"
)

func strp(s string) *string     { return &s }
func floatp(f float64) *float64 { return &f }

func day(d int) time.Time {
	return time.Date(2024, time.October, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckAttendanceInput(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "ordinary day fully entered",
			rec:  Record{AbsentCode: AbsenceNone, StartTime: strp("09:00"), EndTime: strp("18:00"), Rest: floatp(1), WorkStyle: WorkStyleOffice},
			want: "",
		},
		{
			name: "ordinary day without rest",
			rec:  Record{AbsentCode: AbsenceNone, StartTime: strp("09:00"), EndTime: strp("12:00"), WorkStyle: WorkStyleTelework},
			want: "",
		},
		{
			name: "missing end time",
			rec:  Record{AbsentCode: AbsenceNone, StartTime: strp("09:00"), WorkStyle: WorkStyleOffice},
			want: CodeInvalidInput,
		},
		{
			name: "missing work style",
			rec:  Record{AbsentCode: AbsenceNone, StartTime: strp("09:00"), EndTime: strp("18:00"), WorkStyle: WorkStyleNone},
			want: CodeInvalidInput,
		},
		{
			name: "rest alone",
			rec:  Record{AbsentCode: AbsenceNone, Rest: floatp(1), WorkStyle: WorkStyleNone},
			want: CodeInvalidInput,
		},
		{
			name: "ordinary day with nothing entered",
			rec:  Record{AbsentCode: AbsenceNone, WorkStyle: WorkStyleNone},
			want: CodeInvalidInput,
		},
		{
			name: "all-day leave with nothing entered",
			rec:  Record{AbsentCode: AbsencePaidLeave, WorkStyle: WorkStyleNone},
			want: "",
		},
		{
			name: "all-day leave with rest",
			rec:  Record{AbsentCode: AbsenceSpecialLeave, Rest: floatp(1), WorkStyle: WorkStyleNone},
			want: CodeAbsenceDayInput,
		},
		{
			name: "all-day leave with work style",
			rec:  Record{AbsentCode: AbsenceAbsent, WorkStyle: WorkStyleOffice},
			want: CodeAbsenceDayInput,
		},
		{
			name: "half-day off without times",
			rec:  Record{AbsentCode: AbsenceHalfDayOff, WorkStyle: WorkStyleNone},
			want: "",
		},
		{
			name: "half-day off with full times",
			rec:  Record{AbsentCode: AbsenceHalfDayOff, StartTime: strp("13:00"), EndTime: strp("18:00"), WorkStyle: WorkStyleOffice},
			want: "",
		},
		{
			name: "company event with only start",
			rec:  Record{AbsentCode: AbsenceCompanyEvent, StartTime: strp("13:00"), WorkStyle: WorkStyleNone},
			want: CodeAbsenceDayInput,
		},
		{
			name: "company event with rest alone",
			rec:  Record{AbsentCode: AbsenceCompanyEvent, Rest: floatp(0.5), WorkStyle: WorkStyleNone},
			want: CodeAbsenceDayInput,
		},
		{
			name: "unknown absence code",
			rec:  Record{AbsentCode: ParseAbsenceCode("099"), WorkStyle: WorkStyleNone},
			want: CodeUnknownAbsence,
		},
		{
			name: "end before start",
			rec:  Record{AbsentCode: AbsenceNone, StartTime: strp("18:00"), EndTime: strp("09:00"), WorkStyle: WorkStyleOffice},
			want: CodeEndBeforeStart,
		},
		{
			name: "overnight end",
			rec:  Record{AbsentCode: AbsenceNone, StartTime: strp("20:00"), EndTime: strp("26:30"), WorkStyle: WorkStyleOffice},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckAttendanceInput(tt.rec))
		})
	}
}

func TestCheckAttendanceInput_AllDayOffWithStyleZero(t *testing.T) {
	rec := Record{
		AbsentCode: AbsencePaidLeave,
		StartTime:  nil,
		EndTime:    nil,
		Rest:       nil,
		WorkStyle:  ParseWorkStyle("0"),
	}
	assert.Equal(t, "", CheckAttendanceInput(rec))
}

func TestCheckAttendanceInput_StartWithoutEnd(t *testing.T) {
	rec := Record{
		AbsentCode: ParseAbsenceCode("000"),
		StartTime:  strp("09:00"),
		EndTime:    nil,
		WorkStyle:  ParseWorkStyle("1"),
	}
	assert.Equal(t, CodeInvalidInput, CheckAttendanceInput(rec))
}

func fullMonthExcept(skip ...int) []Record {
	skipped := map[int]bool{}
	for _, d := range skip {
		skipped[d] = true
	}
	var recs []Record
	for d := 1; d <= 31; d++ {
		if skipped[d] {
			continue
		}
		recs = append(recs, Record{EmployeeID: "E001", Date: day(d)})
	}
	return recs
}

func TestCheckAttendanceBlank_MissingFirstBusinessDay(t *testing.T) {
	cal := holiday.NewSet(map[time.Time]string{day(14): "Sports Day"})
	assert.Equal(t, time.Tuesday, day(1).Weekday())

	assert.Equal(t, CodeMissingBusinessDay, CheckAttendanceBlank("202410", fullMonthExcept(1), cal))
}

func TestCheckAttendanceBlank_HolidaysAndWeekendsMayBeBlank(t *testing.T) {
	cal := holiday.NewSet(map[time.Time]string{day(14): "Sports Day"})

	// 5th and 6th are a weekend, the 14th a public holiday.
	assert.Equal(t, "", CheckAttendanceBlank("202410", fullMonthExcept(5, 6, 14), cal))
	assert.Equal(t, CodeMissingBusinessDay, CheckAttendanceBlank("202410", fullMonthExcept(14), nil))
}

func TestCheckAttendanceBlank_YearEnd(t *testing.T) {
	var recs []Record
	for d := 1; d <= 29; d++ {
		recs = append(recs, Record{Date: time.Date(2024, time.December, d, 0, 0, 0, 0, time.UTC)})
	}
	assert.Equal(t, "", CheckAttendanceBlank("202412", recs, nil), "Dec 30 and 31 are fixed holidays")
}

func TestCheckAttendanceBlank_BadYearMonth(t *testing.T) {
	assert.Equal(t, CodeInvalidInput, CheckAttendanceBlank("2024-10", nil, nil))
}

func TestMissingBusinessDays(t *testing.T) {
	missing := MissingBusinessDays(day(1), fullMonthExcept(1, 2), nil)
	assert.Equal(t, []time.Time{day(1), day(2)}, missing)
}

func TestTimeInput_AllDayAbsenceHasNoHours(t *testing.T) {
	for _, code := range AllAbsenceCodes() {
		if !code.IsAllDay() {
			continue
		}
		rec := Record{
			Date:       day(7),
			AbsentCode: code,
			StartTime:  strp("09:00"),
			EndTime:    strp("18:00"),
			Rest:       floatp(1),
		}
		res := timecalc.Calculate(rec.TimeInput(), timecalc.DefaultPolicy, nil)
		assert.Nil(t, res.ActiveTime, code)
		assert.Nil(t, res.OverTime, code)
		assert.Nil(t, res.LateNightOverTime, code)
		assert.Nil(t, res.LegalHolidayActiveTime, code)
	}
}

func TestInputError(t *testing.T) {
	d := day(3)
	err := &InputError{Code: CodeEndBeforeStart, Date: &d}
	assert.Equal(t, "EM00005: end time is before start time (2024-10-03)", err.Error())
	assert.Equal(t, "invalid date input exists", (&InputError{Code: CodeInvalidInput}).Message())
}
