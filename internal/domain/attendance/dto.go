package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

type MonthRequest struct {
	EmployeeID string `json:"employeeId"`
	YearMonth  string `json:"yearMonth"`
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors
	validateEmployeeMonth(&errs, r.EmployeeID, r.YearMonth)
	return errs.OrNil()
}

// RecordInput is one day as entered on the monthly sheet.
type RecordInput struct {
	Date       string   `json:"date"`
	StartTime  *string  `json:"startTime,omitempty"`
	EndTime    *string  `json:"endTime,omitempty"`
	Rest       *float64 `json:"rest,omitempty"`
	WorkStyle  string   `json:"workStyle"`
	AbsentCode string   `json:"absentCode"`
	Note       *string  `json:"note,omitempty"`
}

type SaveRequest struct {
	EmployeeID string        `json:"employeeId"`
	YearMonth  string        `json:"yearMonth"`
	Records    []RecordInput `json:"records"`
}

// Validate checks the request shape only. Cross-field consistency is reported
// per day by CheckAttendanceInput so that work in progress can be saved.
func (r *SaveRequest) Validate() error {
	var errs validator.ValidationErrors
	validateEmployeeMonth(&errs, r.EmployeeID, r.YearMonth)

	if len(r.Records) == 0 {
		errs.Add("records", "records must not be empty")
	}
	if len(r.Records) > 31 {
		errs.Add("records", "records must not exceed 31 days")
	}

	seen := make(map[string]bool, len(r.Records))
	for i, rec := range r.Records {
		field := fmt.Sprintf("records[%d]", i)
		date, ok := validator.IsValidDate(rec.Date)
		if !ok {
			errs.Add(field+".date", "date must be YYYY-MM-DD")
		} else if date.Format("200601") != r.YearMonth {
			errs.Add(field+".date", "date must be within yearMonth")
		}
		if seen[rec.Date] {
			errs.Add(field+".date", "duplicate date")
		}
		seen[rec.Date] = true

		if !validator.IsBlank(rec.StartTime) && !validator.IsValidClock(*rec.StartTime) {
			errs.Add(field+".startTime", "startTime must be HH:MM")
		}
		if !validator.IsBlank(rec.EndTime) && !validator.IsValidClock(*rec.EndTime) {
			errs.Add(field+".endTime", "endTime must be HH:MM")
		}
		if rec.Rest != nil && (*rec.Rest < 0 || *rec.Rest > 24) {
			errs.Add(field+".rest", "rest must be between 0 and 24 hours")
		}
		if rec.Note != nil {
			errs.MaxLength(field+".note", *rec.Note, 255)
		}
	}
	return errs.OrNil()
}

// ToRecord converts the input to an entity. Unknown codes are kept as their
// Unknown variant so the month view can flag them.
func (in RecordInput) ToRecord(employeeID string) Record {
	date, _ := validator.IsValidDate(in.Date)
	return Record{
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Rest:       in.Rest,
		WorkStyle:  ParseWorkStyle(in.WorkStyle),
		AbsentCode: ParseAbsenceCode(in.AbsentCode),
		Note:       in.Note,
	}
}

type DeleteRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
}

func (r *DeleteRequest) Validate() error {
	var errs validator.ValidationErrors
	if errs.Required("employeeId", r.EmployeeID) && !validator.IsValidEmployeeID(r.EmployeeID) {
		errs.Add("employeeId", "invalid employeeId")
	}
	if errs.Required("date", r.Date) {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be YYYY-MM-DD")
		}
	}
	return errs.OrNil()
}

func validateEmployeeMonth(errs *validator.ValidationErrors, employeeID, yearMonth string) {
	if errs.Required("employeeId", employeeID) && !validator.IsValidEmployeeID(employeeID) {
		errs.Add("employeeId", "invalid employeeId")
	}
	if errs.Required("yearMonth", yearMonth) {
		if _, ok := validator.IsValidYearMonth(yearMonth); !ok {
			errs.Add("yearMonth", "yearMonth must be YYYYMM")
		}
	}
}

// DayResponse is one calendar day of the monthly sheet.
type DayResponse struct {
	Date                   string   `json:"date"`
	Weekday                string   `json:"weekday"`
	IsBusinessDay          bool     `json:"isBusinessDay"`
	IsLegalHoliday         bool     `json:"isLegalHoliday"`
	HolidayName            string   `json:"holidayName,omitempty"`
	HasRecord              bool     `json:"hasRecord"`
	StartTime              *string  `json:"startTime,omitempty"`
	EndTime                *string  `json:"endTime,omitempty"`
	Rest                   *float64 `json:"rest,omitempty"`
	WorkStyle              string   `json:"workStyle"`
	WorkStyleCaption       string   `json:"workStyleCaption"`
	AbsentCode             string   `json:"absentCode"`
	AbsentCaption          string   `json:"absentCaption"`
	Note                   *string  `json:"note,omitempty"`
	ActiveTime             *float64 `json:"activeTime"`
	OverTime               *float64 `json:"overTime"`
	LateNightOverTime      *float64 `json:"lateNightOverTime"`
	LegalHolidayActiveTime *float64 `json:"legalHolidayActiveTime"`
	ErrorCode              string   `json:"errorCode,omitempty"`
}

type TotalsResponse struct {
	ActiveTime             float64 `json:"activeTime"`
	OverTime               float64 `json:"overTime"`
	LateNightOverTime      float64 `json:"lateNightOverTime"`
	LegalHolidayActiveTime float64 `json:"legalHolidayActiveTime"`
	WorkedDays             int     `json:"workedDays"`
	AbsenceDays            int     `json:"absenceDays"`
}

type MonthResponse struct {
	EmployeeID    string         `json:"employeeId"`
	YearMonth     string         `json:"yearMonth"`
	StatusCode    string         `json:"statusCode"`
	StatusKey     string         `json:"statusKey"`
	StatusCaption string         `json:"statusCaption"`
	Actions       []string       `json:"actions"`
	Days          []DayResponse  `json:"days"`
	Totals        TotalsResponse `json:"totals"`
	HasInputError bool           `json:"hasInputError"`
	BlankError    string         `json:"blankError,omitempty"`
	MissingDays   []string       `json:"missingDays,omitempty"`
}

// MonthRange returns the first day of yearMonth and the first day of the next month.
func MonthRange(yearMonth string) (from, to time.Time, err error) {
	from, err = time.Parse("200601", yearMonth)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, from.AddDate(0, 1, 0), nil
}
