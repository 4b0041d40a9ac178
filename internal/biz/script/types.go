package script

type Status string

const (
	StatusPending    Status = "pending"
	StatusExecuting  Status = "executing"
	StatusDebugging  Status = "debugging"
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
)

// ActiveStatuses are held while an orchestrator owns the script.
var ActiveStatuses = []Status{StatusExecuting, StatusDebugging}

// OpenStatuses are the stored statuses a run may still finish from.
var OpenStatuses = []Status{StatusPending, StatusExecuting, StatusDebugging}

var transitions = map[Status][]Status{
	StatusPending:   {StatusExecuting, StatusFailed},
	StatusExecuting: {StatusDebugging, StatusSuccessful, StatusFailed},
	StatusDebugging: {StatusExecuting, StatusFailed},
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusSuccessful || s == StatusFailed
}

// IsActive reports whether an orchestrator currently owns the script.
func (s Status) IsActive() bool {
	return s == StatusExecuting || s == StatusDebugging
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusExecuting, StatusDebugging, StatusSuccessful, StatusFailed:
		return true
	}
	return false
}
