package approval

import (
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFor(t *testing.T) {
	emp := user.Actor{EmployeeID: "E001", Role: user.RoleEmployee}
	boss := user.Actor{EmployeeID: "B001", Role: user.RoleApprover}

	role, err := RoleFor(emp, "E001", ActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, role)

	_, err = RoleFor(emp, "E002", ActionSubmit)
	assert.ErrorIs(t, err, user.ErrNotOwnRecord)

	_, err = RoleFor(emp, "E001", ActionApprove)
	assert.ErrorIs(t, err, user.ErrApproverAccessRequired)

	role, err = RoleFor(boss, "E001", ActionReject)
	require.NoError(t, err)
	assert.Equal(t, RoleApprover, role)

	_, err = RoleFor(boss, "B001", ActionApprove)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestActionsFor(t *testing.T) {
	emp := user.Actor{EmployeeID: "E001", Role: user.RoleEmployee}
	boss := user.Actor{EmployeeID: "B001", Role: user.RoleApprover}

	assert.Equal(t, []string{"withdraw"}, ActionsFor(emp, "E001", StatusApprovalPending))
	assert.Equal(t, []string{"approve", "reject"}, ActionsFor(boss, "E001", StatusApprovalPending))
	assert.Equal(t, []string{"edit", "clear", "submit"}, ActionsFor(boss, "B001", StatusInput))
	assert.Empty(t, ActionsFor(emp, "E002", StatusInput))
}
