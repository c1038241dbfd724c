package attendance

import (
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

// Record is one employee's attendance for one calendar day.
type Record struct {
	EmployeeID string
	Date       time.Time
	StartTime  *string
	EndTime    *string
	Rest       *float64
	WorkStyle  WorkStyle
	AbsentCode AbsenceCode
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r Record) hasStart() bool { return !validator.IsBlank(r.StartTime) }
func (r Record) hasEnd() bool   { return !validator.IsBlank(r.EndTime) }
func (r Record) hasRest() bool  { return r.Rest != nil && *r.Rest != 0 }
func (r Record) hasStyle() bool { return r.WorkStyle != WorkStyleNone && r.WorkStyle != "" }

// IsBlank reports whether the record carries no information at all.
func (r Record) IsBlank() bool {
	return !r.hasStart() && !r.hasEnd() && !r.hasRest() && !r.hasStyle() &&
		(r.AbsentCode == AbsenceNone || r.AbsentCode == "") && validator.IsBlank(r.Note)
}

// TimeInput adapts the record for timecalc. All-day absences contribute no
// working time whatever is stored.
func (r Record) TimeInput() timecalc.Input {
	if r.AbsentCode.IsAllDay() {
		return timecalc.Input{Date: r.Date}
	}
	return timecalc.Input{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Rest:      r.Rest,
	}
}
