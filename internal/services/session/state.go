package session

// State is the guard's position in one page lifecycle
type State int

const (
	// StateUnauthenticated is the initial state, and the terminal state once
	// no stored token was found
	StateUnauthenticated State = iota
	// StateChecking means a token was found but the server has not yet
	// accepted it
	StateChecking
	// StateAuthenticated means a guarded request succeeded
	StateAuthenticated
	// StateRejected is terminal: the server answered 401
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
