package dailyreport

import (
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
)

// Status is the review stage of one report section.
type Status string

const (
	StatusNoInput        Status = "noInput"
	StatusSaveTemporary  Status = "saveTemporary"
	StatusSubmitted      Status = "submitted"
	StatusFirstApproval  Status = "firstApproval"
	StatusSecondApproval Status = "secondApproval"
	StatusFirstPending   Status = "firstPending"
	StatusSecondPending  Status = "secondPending"

	StatusUnknown Status = "unknown"
)

var statusCaptions = map[Status]string{
	StatusNoInput:        "Not entered",
	StatusSaveTemporary:  "Draft",
	StatusSubmitted:      "Submitted",
	StatusFirstApproval:  "Approved by trainer",
	StatusSecondApproval: "Approved by office",
	StatusFirstPending:   "Returned by trainer",
	StatusSecondPending:  "Returned by office",
}

func ParseStatus(s string) Status {
	if _, ok := statusCaptions[Status(s)]; ok {
		return Status(s)
	}
	return StatusUnknown
}

func (s Status) Caption() string {
	if c, ok := statusCaptions[s]; ok {
		return c
	}
	return "Unknown"
}

const (
	ActionSave     workflow.Action = "save"
	ActionSubmit   workflow.Action = "submit"
	ActionApprove  workflow.Action = "approve"
	ActionReject   workflow.Action = "reject"
	ActionResubmit workflow.Action = "resubmit"
)

const (
	RoleSelf        workflow.Role = "self"
	RoleTrainer     workflow.Role = "trainer"
	RoleOfficeStaff workflow.Role = "officeStaff"
)

// Machine is the two-stage review chain: trainer first, office staff second.
// A section returned at either stage goes back to the stage that returned it.
var Machine = newMachine()

func newMachine() *workflow.Table {
	st := func(s Status) workflow.State { return workflow.State(s) }

	t := workflow.NewTable("daily report",
		st(StatusNoInput), st(StatusSaveTemporary), st(StatusSubmitted),
		st(StatusFirstApproval), st(StatusSecondApproval),
		st(StatusFirstPending), st(StatusSecondPending),
	)

	t.Configure(st(StatusNoInput)).
		Permit(ActionSave, RoleSelf, st(StatusSaveTemporary)).
		Permit(ActionSubmit, RoleSelf, st(StatusSubmitted))

	t.Configure(st(StatusSaveTemporary)).
		Permit(ActionSave, RoleSelf, st(StatusSaveTemporary)).
		Permit(ActionSubmit, RoleSelf, st(StatusSubmitted))

	t.Configure(st(StatusSubmitted)).
		Permit(ActionApprove, RoleTrainer, st(StatusFirstApproval)).
		Permit(ActionReject, RoleTrainer, st(StatusFirstPending))

	t.Configure(st(StatusFirstApproval)).
		Permit(ActionApprove, RoleOfficeStaff, st(StatusSecondApproval)).
		Permit(ActionReject, RoleOfficeStaff, st(StatusSecondPending))

	t.Configure(st(StatusFirstPending)).
		Permit(ActionSave, RoleSelf, st(StatusFirstPending)).
		Permit(ActionResubmit, RoleSelf, st(StatusSubmitted))

	t.Configure(st(StatusSecondPending)).
		Permit(ActionSave, RoleSelf, st(StatusSecondPending)).
		Permit(ActionResubmit, RoleSelf, st(StatusFirstApproval))

	return t
}

// Next applies action to current; on failure current is returned with an
// error wrapping workflow.ErrInvalidTransition.
func Next(current Status, action workflow.Action, role workflow.Role) (Status, error) {
	to, err := Machine.Next(workflow.State(current), action, role)
	if err != nil {
		return current, err
	}
	return Status(to), nil
}

// Permitted lists the actions role may take on a section in current.
func Permitted(current Status, role workflow.Role) []workflow.Action {
	return Machine.Permitted(workflow.State(current), role)
}

// SubmitAction is the author's "send" action for a section in current.
func SubmitAction(current Status) workflow.Action {
	switch current {
	case StatusFirstPending, StatusSecondPending:
		return ActionResubmit
	}
	return ActionSubmit
}
