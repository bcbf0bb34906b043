package models

// CardStatus is the lifecycle state of a card. Exactly two states exist;
// deletion removes the record entirely and is not a state.
type CardStatus string

const (
	StatusActive  CardStatus = "ACTIVE"
	StatusBlocked CardStatus = "BLOCKED"
)

// IsValid reports whether s is one of the two known states.
func (s CardStatus) IsValid() bool {
	return s == StatusActive || s == StatusBlocked
}

// CanTransitionTo reports whether the transition s -> target is legal.
// Re-entering the current state is rejected: activating an active card and
// blocking a blocked card are errors, not no-ops.
func (s CardStatus) CanTransitionTo(target CardStatus) bool {
	if !target.IsValid() {
		return false
	}
	return s != target
}

// ParseStatus validates a caller-supplied status string.
func ParseStatus(s string) (CardStatus, bool) {
	status := CardStatus(s)
	return status, status.IsValid()
}
