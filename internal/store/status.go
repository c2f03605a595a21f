package store

// Phase tracks the request lifecycle of a store. A second operation may start
// while one is in flight; both resolve into the same status and the
// last-to-resolve wins.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

type Status struct {
	Phase Phase
	// Err keeps the failed operation's error; when it is a *gateway.Error
	// the kind (transport/rejected/auth) stays observable via errors.As
	// even though the view layer only renders the flat message.
	Err error
}

func (s Status) Loading() bool {
	return s.Phase == PhaseLoading
}

func (s Status) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}
