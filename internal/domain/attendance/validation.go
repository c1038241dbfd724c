package attendance

import (
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/holiday"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timecalc"
)

// Input error codes shown next to a day and returned on submission.
const (
	CodeInvalidInput       = "EM00001"
	CodeMissingBusinessDay = "EM00002"
	CodeAbsenceDayInput    = "EM00003"
	CodeUnknownAbsence     = "EM00004"
	CodeEndBeforeStart     = "EM00005"
)

var codeMessages = map[string]string{
	CodeInvalidInput:       "invalid date input exists",
	CodeMissingBusinessDay: "missing business-day input exists",
	CodeAbsenceDayInput:    "invalid values on absence day",
	CodeUnknownAbsence:     "unknown absence code",
	CodeEndBeforeStart:     "end time is before start time",
}

// CodeMessage returns the user-facing message of an input error code.
func CodeMessage(code string) string {
	return codeMessages[code]
}

// CheckAttendanceInput returns "" when r is consistent, otherwise the error code.
func CheckAttendanceInput(r Record) string {
	if !r.AbsentCode.IsKnown() {
		return CodeUnknownAbsence
	}
	if !r.WorkStyle.IsKnown() && r.WorkStyle != "" {
		return CodeInvalidInput
	}

	noneSet := !r.hasStart() && !r.hasEnd() && !r.hasRest() && !r.hasStyle()
	worked := r.hasStart() && r.hasEnd() && r.hasStyle()

	switch {
	case r.AbsentCode.IsPartialDay():
		if !noneSet && !worked {
			return CodeAbsenceDayInput
		}
	case r.AbsentCode.IsAllDay():
		if !noneSet {
			return CodeAbsenceDayInput
		}
	default:
		if !worked {
			return CodeInvalidInput
		}
	}

	if worked {
		return checkTimes(*r.StartTime, *r.EndTime)
	}
	return ""
}

func checkTimes(start, end string) string {
	s, err := timecalc.ParseClock(start)
	if err != nil {
		return CodeInvalidInput
	}
	e, err := timecalc.ParseClock(end)
	if err != nil {
		return CodeInvalidInput
	}
	if e < s {
		return CodeEndBeforeStart
	}
	return ""
}

// CheckAttendanceBlank returns CodeMissingBusinessDay when a business day of
// yearMonth has no record, "" otherwise.
func CheckAttendanceBlank(yearMonth string, records []Record, cal holiday.Checker) string {
	month, err := time.Parse("200601", yearMonth)
	if err != nil {
		return CodeInvalidInput
	}

	if len(MissingBusinessDays(month, records, cal)) > 0 {
		return CodeMissingBusinessDay
	}
	return ""
}

// MissingBusinessDays lists the business days of month that have no record.
func MissingBusinessDays(month time.Time, records []Record, cal holiday.Checker) []time.Time {
	recorded := make(map[string]bool, len(records))
	for _, r := range records {
		recorded[r.Date.Format("2006-01-02")] = true
	}
	var missing []time.Time
	for _, day := range holiday.BusinessDays(month, cal) {
		if !recorded[day.Format("2006-01-02")] {
			missing = append(missing, day)
		}
	}
	return missing
}
