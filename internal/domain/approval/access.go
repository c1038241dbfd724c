package approval

import (
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
)

// RoleFor resolves the machine role the actor plays when firing action on
// employeeID's report. Approvers may not approve or reject their own reports.
func RoleFor(actor user.Actor, employeeID string, action workflow.Action) (workflow.Role, error) {
	switch action {
	case ActionApprove, ActionReject:
		if !actor.CanApprove() {
			return "", user.ErrApproverAccessRequired
		}
		if actor.IsSelf(employeeID) {
			return "", user.ErrInsufficientPermissions
		}
		return RoleApprover, nil
	default:
		if !actor.IsSelf(employeeID) {
			return "", user.ErrNotOwnRecord
		}
		return RoleEmployee, nil
	}
}

// ActionsFor lists what the actor may do next with a report in s.
func ActionsFor(actor user.Actor, employeeID string, s Status) []string {
	var role workflow.Role
	switch {
	case actor.IsSelf(employeeID):
		role = RoleEmployee
	case actor.CanApprove():
		role = RoleApprover
	default:
		return []string{}
	}
	actions := Permitted(s, role)
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return out
}
