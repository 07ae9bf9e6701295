package replan

// State is the coordinator lifecycle state.
type State int

const (
	// Idle means no search has run since the last maze or clear.
	Idle State = iota
	// Running means the engine advances on Step.
	Running
	// Paused means a search is active but Step makes no progress.
	Paused
	// Completed means the last search reached a terminal outcome.
	Completed
)

// String returns a lowercase state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Active reports whether a search is in progress, paused or not.
func (s State) Active() bool {
	return s == Running || s == Paused
}
