package settlement

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

type ListRequest struct {
	EmployeeID string `json:"employeeId"`
	YearMonth  string `json:"yearMonth"`
}

func (r *ListRequest) Validate() error {
	var errs validator.ValidationErrors
	validateEmployee(&errs, r.EmployeeID)
	if errs.Required("yearMonth", r.YearMonth) {
		if _, ok := validator.IsValidYearMonth(r.YearMonth); !ok {
			errs.Add("yearMonth", "yearMonth must be YYYYMM")
		}
	}
	return errs.OrNil()
}

type CreateRequest struct {
	EmployeeID     string  `json:"employeeId"`
	Date           string  `json:"date"`
	Form           string  `json:"form"`
	Method         string  `json:"method"`
	Departure      string  `json:"departure"`
	Arrival        string  `json:"arrival"`
	Transportation string  `json:"transportation"`
	Cost           int64   `json:"cost"`
	Note           *string `json:"note,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	validateEmployee(&errs, r.EmployeeID)
	validateLine(&errs, r.Date, r.Form, r.Method, r.Departure, r.Arrival, r.Transportation, r.Cost, r.Note)
	return errs.OrNil()
}

type UpdateRequest struct {
	TNo            int64   `json:"tno"`
	EmployeeID     string  `json:"employeeId"`
	Date           string  `json:"date"`
	Form           string  `json:"form"`
	Method         string  `json:"method"`
	Departure      string  `json:"departure"`
	Arrival        string  `json:"arrival"`
	Transportation string  `json:"transportation"`
	Cost           int64   `json:"cost"`
	Note           *string `json:"note,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.TNo <= 0 {
		errs.Add("tno", "tno is required")
	}
	validateEmployee(&errs, r.EmployeeID)
	validateLine(&errs, r.Date, r.Form, r.Method, r.Departure, r.Arrival, r.Transportation, r.Cost, r.Note)
	return errs.OrNil()
}

type DeleteRequest struct {
	TNo        int64  `json:"tno"`
	EmployeeID string `json:"employeeId"`
}

func (r *DeleteRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.TNo <= 0 {
		errs.Add("tno", "tno is required")
	}
	validateEmployee(&errs, r.EmployeeID)
	return errs.OrNil()
}

type SwapRequest struct {
	EmployeeID string `json:"employeeId"`
	TNoA       int64  `json:"tnoA"`
	TNoB       int64  `json:"tnoB"`
}

func (r *SwapRequest) Validate() error {
	var errs validator.ValidationErrors
	validateEmployee(&errs, r.EmployeeID)
	if r.TNoA <= 0 {
		errs.Add("tnoA", "tnoA is required")
	}
	if r.TNoB <= 0 {
		errs.Add("tnoB", "tnoB is required")
	}
	if r.TNoA > 0 && r.TNoA == r.TNoB {
		errs.Add("tnoB", "tnoB must differ from tnoA")
	}
	return errs.OrNil()
}

func validateEmployee(errs *validator.ValidationErrors, employeeID string) {
	if errs.Required("employeeId", employeeID) && !validator.IsValidEmployeeID(employeeID) {
		errs.Add("employeeId", "invalid employeeId")
	}
}

// MaxCost caps a single fare so the round-trip total stays within int64.
const MaxCost int64 = 1_000_000_000_000

func validateLine(errs *validator.ValidationErrors, date, form, method, departure, arrival, transportation string, cost int64, note *string) {
	if errs.Required("date", date) {
		if _, ok := validator.IsValidDate(date); !ok {
			errs.Add("date", "date must be YYYY-MM-DD")
		}
	}
	if !ParseForm(form).IsKnown() {
		errs.Add("form", "form must be 1 (commuter) or 2 (trip)")
	}
	if !ParseMethod(method).IsKnown() {
		errs.Add("method", "method must be 1 (one way), 2 (round trip) or 3 (stay)")
	}
	if errs.Required("departure", departure) {
		errs.MaxLength("departure", departure, 100)
	}
	if ParseMethod(method) != MethodStay {
		errs.Required("arrival", arrival)
	}
	errs.MaxLength("arrival", arrival, 100)
	if errs.Required("transportation", transportation) {
		errs.MaxLength("transportation", transportation, 100)
	}
	switch {
	case cost < 0:
		errs.Add("cost", "cost must not be negative")
	case cost > MaxCost:
		errs.Add("cost", fmt.Sprintf("cost must not exceed %d", MaxCost))
	}
	if note != nil {
		errs.MaxLength("note", *note, 255)
	}
}

// ToRecord builds the entity with its total applied.
func (r CreateRequest) ToRecord() Record {
	date, _ := validator.IsValidDate(r.Date)
	rec := Record{
		EmployeeID:     r.EmployeeID,
		Date:           date,
		Form:           ParseForm(r.Form),
		Method:         ParseMethod(r.Method),
		Departure:      r.Departure,
		Arrival:        r.Arrival,
		Transportation: r.Transportation,
		Cost:           r.Cost,
		Note:           r.Note,
	}
	rec.ApplyTotal()
	return rec
}

// Apply copies the editable fields onto rec and recomputes the total.
func (r UpdateRequest) Apply(rec *Record) {
	date, _ := validator.IsValidDate(r.Date)
	rec.Date = date
	rec.Form = ParseForm(r.Form)
	rec.Method = ParseMethod(r.Method)
	rec.Departure = r.Departure
	rec.Arrival = r.Arrival
	rec.Transportation = r.Transportation
	rec.Cost = r.Cost
	rec.Note = r.Note
	rec.ApplyTotal()
}

type RecordResponse struct {
	TNo            int64   `json:"tno"`
	DisplayNo      int     `json:"displayNo"`
	Date           string  `json:"date"`
	Form           string  `json:"form"`
	FormCaption    string  `json:"formCaption"`
	Method         string  `json:"method"`
	MethodCaption  string  `json:"methodCaption"`
	Departure      string  `json:"departure"`
	Arrival        string  `json:"arrival"`
	Transportation string  `json:"transportation"`
	Cost           int64   `json:"cost"`
	Total          int64   `json:"total"`
	Note           *string `json:"note,omitempty"`
}

func ToResponse(r Record) RecordResponse {
	return RecordResponse{
		TNo:            r.TNo,
		DisplayNo:      r.DisplayNo,
		Date:           r.Date.Format("2006-01-02"),
		Form:           string(r.Form),
		FormCaption:    r.Form.Caption(),
		Method:         string(r.Method),
		MethodCaption:  r.Method.Caption(),
		Departure:      r.Departure,
		Arrival:        r.Arrival,
		Transportation: r.Transportation,
		Cost:           r.Cost,
		Total:          r.Total,
		Note:           r.Note,
	}
}

type ListResponse struct {
	EmployeeID    string           `json:"employeeId"`
	YearMonth     string           `json:"yearMonth"`
	StatusCode    string           `json:"statusCode"`
	StatusKey     string           `json:"statusKey"`
	StatusCaption string           `json:"statusCaption"`
	Actions       []string         `json:"actions"`
	Records       []RecordResponse `json:"records"`
	Total         int64            `json:"total"`
}

// SumTotal adds up the line totals.
func SumTotal(records []Record) int64 {
	var sum int64
	for _, r := range records {
		sum += r.Total
	}
	return sum
}

// YearMonth returns the YYYYMM key of d.
func YearMonth(d time.Time) string {
	return d.Format("200601")
}
