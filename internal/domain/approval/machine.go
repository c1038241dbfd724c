package approval

import (
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
)

const (
	ActionEdit     workflow.Action = "edit"
	ActionClear    workflow.Action = "clear"
	ActionSubmit   workflow.Action = "submit"
	ActionWithdraw workflow.Action = "withdraw"
	ActionApprove  workflow.Action = "approve"
	ActionReject   workflow.Action = "reject"
	ActionResubmit workflow.Action = "resubmit"
)

const (
	RoleEmployee workflow.Role = "employee"
	RoleApprover workflow.Role = "approver"
)

// Machine is the transition table shared by the attendance, settlement and
// reimbursement reports.
var Machine = newMachine()

func newMachine() *workflow.Table {
	st := func(s Status) workflow.State { return workflow.State(s.Key()) }

	states := make([]workflow.State, 0, len(statuses))
	for _, s := range AllStatuses() {
		states = append(states, st(s))
	}
	t := workflow.NewTable("monthly report", states...)

	t.Configure(st(StatusNoInput)).
		Permit(ActionEdit, RoleEmployee, st(StatusInput))

	t.Configure(st(StatusInput)).
		Permit(ActionEdit, RoleEmployee, st(StatusInput)).
		Permit(ActionClear, RoleEmployee, st(StatusNoInput)).
		Permit(ActionSubmit, RoleEmployee, st(StatusApprovalPending))

	t.Configure(st(StatusApprovalPending)).
		Permit(ActionApprove, RoleApprover, st(StatusApproved)).
		Permit(ActionWithdraw, RoleEmployee, st(StatusInput)).
		Permit(ActionReject, RoleApprover, st(StatusReinput))

	t.Configure(st(StatusReinput)).
		Permit(ActionEdit, RoleEmployee, st(StatusReinput)).
		Permit(ActionClear, RoleEmployee, st(StatusNoInput)).
		Permit(ActionResubmit, RoleEmployee, st(StatusReApprovalPending))

	t.Configure(st(StatusReApprovalPending)).
		Permit(ActionApprove, RoleApprover, st(StatusApproved)).
		Permit(ActionReject, RoleApprover, st(StatusReinput))

	t.Configure(st(StatusApproved)).
		Permit(ActionReject, RoleApprover, st(StatusReinput))

	return t
}

// Next applies action to current. The returned error wraps
// workflow.ErrInvalidTransition and current is returned unchanged.
func Next(current Status, action workflow.Action, role workflow.Role) (Status, error) {
	to, err := Machine.Next(workflow.State(current.Key()), action, role)
	if err != nil {
		return current, err
	}
	return StatusFromKey(string(to)), nil
}

// Permitted lists the actions role may take from current.
func Permitted(current Status, role workflow.Role) []workflow.Action {
	return Machine.Permitted(workflow.State(current.Key()), role)
}

// SubmitAction picks submit or resubmit for an employee's submission.
func SubmitAction(current Status) workflow.Action {
	if current == StatusReinput {
		return ActionResubmit
	}
	return ActionSubmit
}

// NotifiesAdmins reports whether entering to must alert administrators.
func NotifiesAdmins(to Status) bool {
	return to == StatusReApprovalPending
}

// NotifiesEmployee reports whether action must alert the report's owner.
func NotifiesEmployee(action workflow.Action) bool {
	return action == ActionReject
}
