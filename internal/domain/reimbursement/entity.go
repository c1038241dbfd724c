package reimbursement

import "time"

// Record is one reimbursement line. DisplayNo runs 1..N over the whole month.
type Record struct {
	TNo        int64
	EmployeeID string
	DisplayNo  int
	Date       time.Time
	Contents   string
	PaidTo     string
	Cost       int64
	InvoiceFlg bool
	Note       *string
	// CreatedAt is zero for lines not yet persisted.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsNew reports whether the line has not been stored yet.
func (r Record) IsNew() bool {
	return r.CreatedAt.IsZero()
}
