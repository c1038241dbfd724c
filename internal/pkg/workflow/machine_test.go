package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stateDraft    State = "draft"
	stateSent     State = "sent"
	stateAccepted State = "accepted"

	actionSend   Action = "send"
	actionAccept Action = "accept"

	roleWriter Role = "writer"
	roleReader Role = "reader"
)

func newTestTable() *Table {
	t := NewTable("test", stateDraft, stateSent, stateAccepted)
	t.Configure(stateDraft).Permit(actionSend, roleWriter, stateSent)
	t.Configure(stateSent).Permit(actionAccept, roleReader, stateAccepted)
	return t
}

func TestTable_Next(t *testing.T) {
	table := newTestTable()

	next, err := table.Next(stateDraft, actionSend, roleWriter)
	require.NoError(t, err)
	assert.Equal(t, stateSent, next)

	next, err = table.Next(next, actionAccept, roleReader)
	require.NoError(t, err)
	assert.Equal(t, stateAccepted, next)
}

func TestTable_Next_WrongRole(t *testing.T) {
	table := newTestTable()

	next, err := table.Next(stateSent, actionAccept, roleWriter)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, stateSent, next, "state must not advance on rejection")
}

func TestTable_Next_NoRule(t *testing.T) {
	table := newTestTable()

	_, err := table.Next(stateAccepted, actionSend, roleWriter)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTable_Next_UnknownState(t *testing.T) {
	table := newTestTable()

	_, err := table.Next(State("bogus"), actionSend, roleWriter)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTable_Permitted(t *testing.T) {
	table := newTestTable()

	assert.Equal(t, []Action{actionSend}, table.Permitted(stateDraft, roleWriter))
	assert.Empty(t, table.Permitted(stateDraft, roleReader))
	assert.Empty(t, table.Permitted(stateAccepted, roleWriter))
}

func TestTable_ConfigurePanics(t *testing.T) {
	table := newTestTable()

	assert.Panics(t, func() { table.Configure(State("bogus")) })
	assert.Panics(t, func() { table.Configure(stateDraft).Permit(actionSend, roleReader, State("bogus")) })
	assert.Panics(t, func() { table.Configure(stateDraft).Permit(actionSend, roleWriter, stateAccepted) })
}

func TestTable_Transitions(t *testing.T) {
	table := newTestTable()

	trs := table.Transitions()
	require.Len(t, trs, 2)
	assert.Equal(t, Transition{From: stateDraft, Action: actionSend, Role: roleWriter, To: stateSent}, trs[0])

	trs[0].To = stateAccepted
	assert.Equal(t, stateSent, table.Transitions()[0].To, "Transitions must return a copy")
}
