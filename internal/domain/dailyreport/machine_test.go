package dailyreport

import (
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_ReviewChain(t *testing.T) {
	steps := []struct {
		action workflow.Action
		role   workflow.Role
		want   Status
	}{
		{ActionSave, RoleSelf, StatusSaveTemporary},
		{ActionSave, RoleSelf, StatusSaveTemporary},
		{ActionSubmit, RoleSelf, StatusSubmitted},
		{ActionReject, RoleTrainer, StatusFirstPending},
		{ActionSave, RoleSelf, StatusFirstPending},
		{ActionResubmit, RoleSelf, StatusSubmitted},
		{ActionApprove, RoleTrainer, StatusFirstApproval},
		{ActionReject, RoleOfficeStaff, StatusSecondPending},
		{ActionResubmit, RoleSelf, StatusFirstApproval},
		{ActionApprove, RoleOfficeStaff, StatusSecondApproval},
	}

	s := StatusNoInput
	for _, step := range steps {
		next, err := Next(s, step.action, step.role)
		require.NoError(t, err, "%s %s from %s", step.role, step.action, s)
		assert.Equal(t, step.want, next)
		s = next
	}
}

func TestNext_SubmitDirectlyFromNoInput(t *testing.T) {
	s, err := Next(StatusNoInput, ActionSubmit, RoleSelf)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, s)
}

func TestNext_ResubmitReturnsToRejectingStage(t *testing.T) {
	s, err := Next(StatusSecondPending, ActionResubmit, RoleSelf)
	require.NoError(t, err)
	assert.Equal(t, StatusFirstApproval, s, "office-staff rejection skips the trainer on resubmit")

	s, err = Next(StatusFirstPending, ActionResubmit, RoleSelf)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, s)
}

func TestNext_WrongRole(t *testing.T) {
	tests := []struct {
		from   Status
		action workflow.Action
		role   workflow.Role
	}{
		{StatusSubmitted, ActionApprove, RoleOfficeStaff},
		{StatusSubmitted, ActionApprove, RoleSelf},
		{StatusFirstApproval, ActionApprove, RoleTrainer},
		{StatusSecondApproval, ActionReject, RoleOfficeStaff},
		{StatusSubmitted, ActionSave, RoleSelf},
		{StatusFirstPending, ActionSubmit, RoleSelf},
	}
	for _, tt := range tests {
		got, err := Next(tt.from, tt.action, tt.role)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
		assert.Equal(t, tt.from, got)
	}
}

func TestPermitted(t *testing.T) {
	assert.Equal(t, []workflow.Action{ActionApprove, ActionReject}, Permitted(StatusSubmitted, RoleTrainer))
	assert.Empty(t, Permitted(StatusSubmitted, RoleOfficeStaff))
	assert.Equal(t, []workflow.Action{ActionSave, ActionResubmit}, Permitted(StatusSecondPending, RoleSelf))
	assert.Empty(t, Permitted(StatusSecondApproval, RoleSelf))
}

func TestSubmitAction(t *testing.T) {
	assert.Equal(t, ActionSubmit, SubmitAction(StatusSaveTemporary))
	assert.Equal(t, ActionResubmit, SubmitAction(StatusFirstPending))
	assert.Equal(t, ActionResubmit, SubmitAction(StatusSecondPending))
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusFirstPending, ParseStatus("firstPending"))
	assert.Equal(t, StatusUnknown, ParseStatus("approved"))
	assert.Equal(t, "Returned by office", StatusSecondPending.Caption())
}

func TestListRequest_Validate(t *testing.T) {
	kind := "yearly"
	req := ListRequest{From: "2024-10-31", To: "2024-10-01", Kind: &kind}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to must not be before from")
	assert.Contains(t, err.Error(), "kind")

	ok := ListRequest{From: "2024-10-01", To: "2024-10-31"}
	assert.NoError(t, ok.Validate())
}

func TestPost_Progress(t *testing.T) {
	p := Post{Sections: []Section{{Status: StatusSubmitted}, {Status: StatusSubmitted}, {Status: StatusFirstPending}}}
	assert.Equal(t, map[Status]int{StatusSubmitted: 2, StatusFirstPending: 1}, p.Progress())
}
