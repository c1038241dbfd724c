package reimbursement

import "errors"

var (
	ErrReimbursementNotFound = errors.New("reimbursement record not found")
)
