package user

import "errors"

var (
	ErrActorMissing            = errors.New("no authenticated actor")
	ErrInvalidRole             = errors.New("invalid role")
	ErrEmployeeIDClaimMissing  = errors.New("employee_id claim is missing")
	ErrApproverAccessRequired  = errors.New("approver access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrNotOwnRecord            = errors.New("record belongs to another employee")
)
