package workflow

import (
	"errors"
	"fmt"
)

// State is a node of an approval lifecycle.
type State string

// Action is a request to move between states.
type Action string

// Role is the capacity in which an actor fires an action.
type Role string

var (
	// ErrInvalidTransition is returned when the table has no rule for the
	// (state, action, role) triple.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidState is returned when a state is not part of the table.
	ErrInvalidState = errors.New("invalid state")
)

// Transition is a single rule of a table.
type Transition struct {
	From   State
	Action Action
	Role   Role
	To     State
}

// Table is an immutable-after-setup transition table gated by role.
// It holds no current state: callers pass the stored state in and persist
// whatever Next returns.
type Table struct {
	name   string
	states map[State]bool
	rules  map[State]map[Action][]Transition
	order  []Transition
}

// StateConfiguration configures the rules leaving one state.
type StateConfiguration struct {
	table *Table
	from  State
}

// NewTable creates a table that accepts only the listed states. The name
// prefixes configuration panics.
func NewTable(name string, states ...State) *Table {
	t := &Table{
		name:   name,
		states: make(map[State]bool, len(states)),
		rules:  make(map[State]map[Action][]Transition),
	}
	for _, s := range states {
		t.states[s] = true
	}
	return t
}

// Configure returns the configuration for transitions leaving state.
func (t *Table) Configure(state State) *StateConfiguration {
	if !t.states[state] {
		panic(fmt.Sprintf("%s: invalid state: %s", t.name, state))
	}
	return &StateConfiguration{table: t, from: state}
}

// Permit lets role fire action from the configured state, landing in toState.
func (c *StateConfiguration) Permit(action Action, role Role, toState State) *StateConfiguration {
	t := c.table
	if !t.states[toState] {
		panic(fmt.Sprintf("%s: invalid target state: %s", t.name, toState))
	}
	if t.rules[c.from] == nil {
		t.rules[c.from] = make(map[Action][]Transition)
	}
	for _, existing := range t.rules[c.from][action] {
		if existing.Role == role {
			panic(fmt.Sprintf("%s: duplicate rule %s --%s/%s-->", t.name, c.from, action, role))
		}
	}
	tr := Transition{From: c.from, Action: action, Role: role, To: toState}
	t.rules[c.from][action] = append(t.rules[c.from][action], tr)
	t.order = append(t.order, tr)
	return c
}

// IsValid reports whether s belongs to the table.
func (t *Table) IsValid(s State) bool {
	return t.states[s]
}

// Next returns the state reached when role fires action from from.
func (t *Table) Next(from State, action Action, role Role) (State, error) {
	if !t.states[from] {
		return from, fmt.Errorf("%w: %s: %q", ErrInvalidState, t.name, from)
	}
	for _, tr := range t.rules[from][action] {
		if tr.Role == role {
			return tr.To, nil
		}
	}
	return from, fmt.Errorf("%w: %s: cannot %s from %s as %s", ErrInvalidTransition, t.name, action, from, role)
}

// Can reports whether Next would succeed.
func (t *Table) Can(from State, action Action, role Role) bool {
	_, err := t.Next(from, action, role)
	return err == nil
}

// Permitted lists the actions role may fire from state, in registration order.
func (t *Table) Permitted(from State, role Role) []Action {
	actions := make([]Action, 0)
	for _, tr := range t.order {
		if tr.From == from && tr.Role == role {
			actions = append(actions, tr.Action)
		}
	}
	return actions
}

// Transitions returns a copy of every rule in registration order.
func (t *Table) Transitions() []Transition {
	out := make([]Transition, len(t.order))
	copy(out, t.order)
	return out
}
