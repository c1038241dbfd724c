package approval

import (
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

type StatusRequest struct {
	EmployeeID string `json:"employeeId"`
	YearMonth  string `json:"yearMonth"`
}

func (r *StatusRequest) Validate() error {
	var errs validator.ValidationErrors
	validateKey(&errs, r.EmployeeID, r.YearMonth)
	return errs.OrNil()
}

// TransitionRequest drives submit, withdraw, approve and reject.
type TransitionRequest struct {
	EmployeeID string  `json:"employeeId"`
	YearMonth  string  `json:"yearMonth"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *TransitionRequest) Validate() error {
	var errs validator.ValidationErrors
	validateKey(&errs, r.EmployeeID, r.YearMonth)
	if r.Reason != nil && len(*r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}
	return errs.OrNil()
}

func validateKey(errs *validator.ValidationErrors, employeeID, yearMonth string) {
	if errs.Required("employeeId", employeeID) && !validator.IsValidEmployeeID(employeeID) {
		errs.Add("employeeId", "invalid employeeId")
	}
	if errs.Required("yearMonth", yearMonth) {
		if _, ok := validator.IsValidYearMonth(yearMonth); !ok {
			errs.Add("yearMonth", "yearMonth must be YYYYMM")
		}
	}
}

type ReportStatusResponse struct {
	ReportType ReportType `json:"reportType"`
	Code       string     `json:"code"`
	Key        string     `json:"key"`
	Caption    string     `json:"caption"`
	Actions    []string   `json:"actions"`
}

type EventResponse struct {
	ReportType ReportType `json:"reportType"`
	Action     string     `json:"action"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	ActorID    string     `json:"actorId"`
	Reason     *string    `json:"reason,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type StatusResponse struct {
	EmployeeID  string                 `json:"employeeId"`
	YearMonth   string                 `json:"yearMonth"`
	TotalActive float64                `json:"totalActive"`
	Reports     []ReportStatusResponse `json:"reports"`
	History     []EventResponse        `json:"history"`
}

// TransitionResponse is returned after a lifecycle action.
type TransitionResponse struct {
	EmployeeID string     `json:"employeeId"`
	YearMonth  string     `json:"yearMonth"`
	ReportType ReportType `json:"reportType"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	Caption    string     `json:"caption"`
}
