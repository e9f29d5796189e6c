package models

import "errors"

// ErrTransitionNotAllowed is returned when the current status is outside a
// transition's source set or its guard rejects.
var ErrTransitionNotAllowed = errors.New("transition not allowed")

const (
	TransitionActivate   = "activate"
	TransitionDeactivate = "deactivate"
)

// Guard is an extra condition checked before a transition fires
type Guard func() bool

// Transition moves a record between statuses. A nil Sources slice means the
// transition may fire from any status.
type Transition struct {
	Name    string
	Sources []Status
	Target  Status
	Guard   Guard
}

// Machine holds the fixed transition table for a record
type Machine struct {
	transitions map[string]Transition
}

// NewMachine builds a machine from a transition table
func NewMachine(transitions ...Transition) *Machine {
	m := &Machine{transitions: make(map[string]Transition, len(transitions))}
	for _, t := range transitions {
		m.transitions[t.Name] = t
	}
	return m
}

// Apply returns the target status for the named transition, or
// ErrTransitionNotAllowed if the transition is unknown, the current status is
// not in the source set, or the guard rejects. It does not mutate anything.
func (m *Machine) Apply(name string, current Status) (Status, error) {
	t, ok := m.transitions[name]
	if !ok {
		return current, ErrTransitionNotAllowed
	}

	if t.Sources != nil {
		allowed := false
		for _, s := range t.Sources {
			if s == current {
				allowed = true
				break
			}
		}
		if !allowed {
			return current, ErrTransitionNotAllowed
		}
	}

	if t.Guard != nil && !t.Guard() {
		return current, ErrTransitionNotAllowed
	}

	return t.Target, nil
}
