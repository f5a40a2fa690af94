package session

import "fmt"

// State is Idle, or Open with the number of the next statement in the
// transaction.
type State struct {
	Counter int
}

// Idle is the state with no transaction open.
var Idle = State{}

// Open returns the state of a transaction about to run statement n.
func Open(n int) State {
	return State{Counter: n}
}

// IsOpen reports whether a transaction is open.
func (s State) IsOpen() bool {
	return s.Counter > 0
}

func (s State) String() string {
	if !s.IsOpen() {
		return "Idle"
	}
	return fmt.Sprintf("Open(%d)", s.Counter)
}
