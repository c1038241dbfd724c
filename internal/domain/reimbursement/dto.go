package reimbursement

import (
	"fmt"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

type ListRequest struct {
	EmployeeID string `json:"employeeId"`
	YearMonth  string `json:"yearMonth"`
}

func (r *ListRequest) Validate() error {
	var errs validator.ValidationErrors
	validateEmployeeMonth(&errs, r.EmployeeID, r.YearMonth)
	return errs.OrNil()
}

// LineInput is one line as entered.
type LineInput struct {
	Date       string  `json:"date"`
	Contents   string  `json:"contents"`
	PaidTo     string  `json:"paidTo"`
	Cost       int64   `json:"cost"`
	InvoiceFlg bool    `json:"invoiceFlg"`
	Note       *string `json:"note,omitempty"`
}

// CreateRequest adds one or more lines to a month in a single renumbering pass.
type CreateRequest struct {
	EmployeeID string      `json:"employeeId"`
	YearMonth  string      `json:"yearMonth"`
	Lines      []LineInput `json:"lines"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	validateEmployeeMonth(&errs, r.EmployeeID, r.YearMonth)
	if len(r.Lines) == 0 {
		errs.Add("lines", "lines must not be empty")
	}
	for i, l := range r.Lines {
		validateLine(&errs, fmt.Sprintf("lines[%d].", i), r.YearMonth, l)
	}
	return errs.OrNil()
}

func (r CreateRequest) ToRecords() []Record {
	out := make([]Record, 0, len(r.Lines))
	for _, l := range r.Lines {
		date, _ := validator.IsValidDate(l.Date)
		out = append(out, Record{
			EmployeeID: r.EmployeeID,
			Date:       date,
			Contents:   l.Contents,
			PaidTo:     l.PaidTo,
			Cost:       l.Cost,
			InvoiceFlg: l.InvoiceFlg,
			Note:       l.Note,
		})
	}
	return out
}

type UpdateRequest struct {
	TNo        int64     `json:"tno"`
	EmployeeID string    `json:"employeeId"`
	Line       LineInput `json:"line"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.TNo <= 0 {
		errs.Add("tno", "tno is required")
	}
	if errs.Required("employeeId", r.EmployeeID) && !validator.IsValidEmployeeID(r.EmployeeID) {
		errs.Add("employeeId", "invalid employeeId")
	}
	validateLine(&errs, "line.", "", r.Line)
	return errs.OrNil()
}

// Apply copies the editable fields onto rec.
func (r UpdateRequest) Apply(rec *Record) {
	date, _ := validator.IsValidDate(r.Line.Date)
	rec.Date = date
	rec.Contents = r.Line.Contents
	rec.PaidTo = r.Line.PaidTo
	rec.Cost = r.Line.Cost
	rec.InvoiceFlg = r.Line.InvoiceFlg
	rec.Note = r.Line.Note
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
	if errs.Required("employeeId", r.EmployeeID) && !validator.IsValidEmployeeID(r.EmployeeID) {
		errs.Add("employeeId", "invalid employeeId")
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

// validateLine checks one line; a non-empty yearMonth pins the date to that month.
// MaxCost caps a single line so monthly totals stay within int64.
const MaxCost int64 = 1_000_000_000_000

func validateLine(errs *validator.ValidationErrors, prefix, yearMonth string, l LineInput) {
	if errs.Required(prefix+"date", l.Date) {
		if d, ok := validator.IsValidDate(l.Date); !ok {
			errs.Add(prefix+"date", "date must be YYYY-MM-DD")
		} else if yearMonth != "" && d.Format("200601") != yearMonth {
			errs.Add(prefix+"date", "date must be within yearMonth")
		}
	}
	if errs.Required(prefix+"contents", l.Contents) {
		errs.MaxLength(prefix+"contents", l.Contents, 255)
	}
	if errs.Required(prefix+"paidTo", l.PaidTo) {
		errs.MaxLength(prefix+"paidTo", l.PaidTo, 255)
	}
	switch {
	case l.Cost < 0:
		errs.Add(prefix+"cost", "cost must not be negative")
	case l.Cost > MaxCost:
		errs.Add(prefix+"cost", fmt.Sprintf("cost must not exceed %d", MaxCost))
	}
	if l.Note != nil {
		errs.MaxLength(prefix+"note", *l.Note, 255)
	}
}

type RecordResponse struct {
	TNo        int64   `json:"tno"`
	DisplayNo  int     `json:"displayNo"`
	Date       string  `json:"date"`
	Contents   string  `json:"contents"`
	PaidTo     string  `json:"paidTo"`
	Cost       int64   `json:"cost"`
	InvoiceFlg bool    `json:"invoiceFlg"`
	Note       *string `json:"note,omitempty"`
}

func ToResponse(r Record) RecordResponse {
	return RecordResponse{
		TNo:        r.TNo,
		DisplayNo:  r.DisplayNo,
		Date:       r.Date.Format("2006-01-02"),
		Contents:   r.Contents,
		PaidTo:     r.PaidTo,
		Cost:       r.Cost,
		InvoiceFlg: r.InvoiceFlg,
		Note:       r.Note,
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

// SumCost adds up the line costs.
func SumCost(records []Record) int64 {
	var sum int64
	for _, r := range records {
		sum += r.Cost
	}
	return sum
}
