package approval

import (
	"fmt"
	"time"
)

// ReportType identifies one of the three monthly reports sharing an approval row.
type ReportType string

const (
	ReportAttendance    ReportType = "attendance"
	ReportSettlement    ReportType = "settlement"
	ReportReimbursement ReportType = "reimbursement"
)

func (rt ReportType) IsValid() bool {
	switch rt {
	case ReportAttendance, ReportSettlement, ReportReimbursement:
		return true
	}
	return false
}

// Label is the human name used in notifications.
func (rt ReportType) Label() string {
	switch rt {
	case ReportAttendance:
		return "Attendance"
	case ReportSettlement:
		return "Travel settlement"
	case ReportReimbursement:
		return "Reimbursement"
	}
	return string(rt)
}

// Record is the per employee, per month approval aggregate.
type Record struct {
	EmployeeID          string
	YearMonth           string
	AttendanceStatus    Status
	SettlementStatus    Status
	ReimbursementStatus Status
	TotalActive         float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewRecord returns a fresh record with every report in noInput.
func NewRecord(employeeID, yearMonth string) Record {
	return Record{
		EmployeeID:          employeeID,
		YearMonth:           yearMonth,
		AttendanceStatus:    StatusNoInput,
		SettlementStatus:    StatusNoInput,
		ReimbursementStatus: StatusNoInput,
	}
}

func (r Record) Status(rt ReportType) Status {
	switch rt {
	case ReportAttendance:
		return r.AttendanceStatus
	case ReportSettlement:
		return r.SettlementStatus
	case ReportReimbursement:
		return r.ReimbursementStatus
	}
	return StatusUnknown
}

func (r *Record) SetStatus(rt ReportType, s Status) {
	switch rt {
	case ReportAttendance:
		r.AttendanceStatus = s
	case ReportSettlement:
		r.SettlementStatus = s
	case ReportReimbursement:
		r.ReimbursementStatus = s
	}
}

// Event is one applied transition, kept as the approval history.
type Event struct {
	ID         int64
	EmployeeID string
	YearMonth  string
	ReportType ReportType
	Action     string
	From       Status
	To         Status
	ActorID    string
	Reason     *string
	CreatedAt  time.Time
}

// YearMonthOf formats t as the six-digit YYYYMM key.
func YearMonthOf(t time.Time) string {
	return fmt.Sprintf("%04d%02d", t.Year(), int(t.Month()))
}

// PreviousYearMonth returns the key of the month before t's month.
func PreviousYearMonth(t time.Time) string {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return YearMonthOf(first.AddDate(0, -1, 0))
}
