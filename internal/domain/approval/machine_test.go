package approval

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_TransitionTable(t *testing.T) {
	tests := []struct {
		from   Status
		action workflow.Action
		role   workflow.Role
		to     Status
	}{
		{StatusNoInput, ActionEdit, RoleEmployee, StatusInput},
		{StatusInput, ActionSubmit, RoleEmployee, StatusApprovalPending},
		{StatusApprovalPending, ActionApprove, RoleApprover, StatusApproved},
		{StatusApprovalPending, ActionWithdraw, RoleEmployee, StatusInput},
		{StatusApprovalPending, ActionReject, RoleApprover, StatusReinput},
		{StatusReinput, ActionResubmit, RoleEmployee, StatusReApprovalPending},
		{StatusReApprovalPending, ActionApprove, RoleApprover, StatusApproved},
		{StatusReApprovalPending, ActionReject, RoleApprover, StatusReinput},
		{StatusApproved, ActionReject, RoleApprover, StatusReinput},
		{StatusInput, ActionEdit, RoleEmployee, StatusInput},
		{StatusReinput, ActionEdit, RoleEmployee, StatusReinput},
		{StatusInput, ActionClear, RoleEmployee, StatusNoInput},
		{StatusReinput, ActionClear, RoleEmployee, StatusNoInput},
	}

	for _, tt := range tests {
		t.Run(tt.from.Key()+"/"+string(tt.action), func(t *testing.T) {
			got, err := Next(tt.from, tt.action, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestNext_RejectThenResubmitGoesToReApproval(t *testing.T) {
	s, err := Next(StatusApprovalPending, ActionReject, RoleApprover)
	require.NoError(t, err)
	assert.Equal(t, StatusReinput, s)

	s, err = Next(s, SubmitAction(s), RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, StatusReApprovalPending, s)
	assert.True(t, NotifiesAdmins(s))
}

func TestNext_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		action workflow.Action
		role   workflow.Role
	}{
		{"input cannot be rejected", StatusInput, ActionReject, RoleApprover},
		{"employee cannot approve", StatusApprovalPending, ActionApprove, RoleEmployee},
		{"approver cannot submit", StatusInput, ActionSubmit, RoleApprover},
		{"no submit from noInput", StatusNoInput, ActionSubmit, RoleEmployee},
		{"no plain submit from reinput", StatusReinput, ActionSubmit, RoleEmployee},
		{"no edit while pending", StatusApprovalPending, ActionEdit, RoleEmployee},
		{"no edit once approved", StatusApproved, ActionEdit, RoleEmployee},
		{"no withdraw from re-approval", StatusReApprovalPending, ActionWithdraw, RoleEmployee},
		{"unknown status", StatusUnknown, ActionEdit, RoleEmployee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.from, tt.action, tt.role)
			assert.Error(t, err)
			assert.Equal(t, tt.from, got, "state must not advance")
		})
	}
}

func TestMachine_NoReinputFromInput(t *testing.T) {
	for _, tr := range Machine.Transitions() {
		if tr.From == workflow.State(StatusInput.Key()) {
			assert.NotEqual(t, workflow.State(StatusReinput.Key()), tr.To)
		}
	}
}

// Every rule reachable through Next must be listed by Transitions and nothing else.
func TestMachine_TableIsOnlySourceOfTruth(t *testing.T) {
	listed := map[workflow.Transition]bool{}
	for _, tr := range Machine.Transitions() {
		listed[tr] = true
	}

	actions := []workflow.Action{ActionEdit, ActionClear, ActionSubmit, ActionWithdraw, ActionApprove, ActionReject, ActionResubmit}
	roles := []workflow.Role{RoleEmployee, RoleApprover}
	for _, from := range AllStatuses() {
		for _, a := range actions {
			for _, r := range roles {
				to, err := Next(from, a, r)
				key := workflow.Transition{From: workflow.State(from.Key()), Action: a, Role: r, To: workflow.State(to.Key())}
				assert.Equal(t, err == nil, listed[key], "%s %s %s", from.Key(), a, r)
			}
		}
	}
}

func TestPermitted(t *testing.T) {
	assert.Equal(t, []workflow.Action{ActionApprove, ActionReject}, Permitted(StatusApprovalPending, RoleApprover))
	assert.Equal(t, []workflow.Action{ActionWithdraw}, Permitted(StatusApprovalPending, RoleEmployee))
	assert.Empty(t, Permitted(StatusApproved, RoleEmployee))
}

func TestNotifies(t *testing.T) {
	assert.True(t, NotifiesEmployee(ActionReject))
	assert.False(t, NotifiesEmployee(ActionApprove))
	assert.False(t, NotifiesAdmins(StatusApprovalPending))
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusApproved, ParseStatus("3"))
	assert.Equal(t, StatusUnknown, ParseStatus("9"))
	assert.Equal(t, StatusUnknown, ParseStatus(""))
	assert.False(t, StatusUnknown.IsKnown())
	assert.Equal(t, "unknown", StatusUnknown.Key())
	assert.Equal(t, StatusReinput, StatusFromKey("reinput"))
}

func TestStatus_Caption(t *testing.T) {
	assert.Equal(t, "Unapproved", StatusNoInput.Caption(ReportAttendance))
	assert.Equal(t, "No input", StatusNoInput.Caption(ReportSettlement))
	assert.Equal(t, "Approved", StatusApproved.Caption(ReportReimbursement))
	assert.Equal(t, "Unknown", StatusUnknown.Caption(ReportAttendance))
}

func TestRecord_Status(t *testing.T) {
	r := NewRecord("E001", "202410")
	r.SetStatus(ReportSettlement, StatusInput)

	assert.Equal(t, StatusNoInput, r.Status(ReportAttendance))
	assert.Equal(t, StatusInput, r.Status(ReportSettlement))
	assert.Equal(t, StatusUnknown, r.Status(ReportType("bogus")))
}

func TestYearMonth(t *testing.T) {
	d := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "202401", YearMonthOf(d))
	assert.Equal(t, "202312", PreviousYearMonth(d))
}
