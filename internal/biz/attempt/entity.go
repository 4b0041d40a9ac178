package attempt

import "time"

// Attempt is one execute-then-repair cycle of a script. Attempts are appended
// once completed and never modified afterwards.
type Attempt struct {
	ID        uint64
	CreatedAt time.Time

	ScriptID       string
	Number         int
	OriginalScript string
	ModifiedScript string
	SceneClass     string
	Successful     bool
	Output         string
	Error          string
	OutputPath     string
	Repair         RepairKind
	StartedAt      time.Time
	CompletedAt    time.Time
}

// RepairKind records which repair strategy followed a failed attempt.
type RepairKind string

const (
	RepairNone    RepairKind = ""
	RepairInstall RepairKind = "dependency_install"
	RepairDebug   RepairKind = "ai_debug"
)

// Duration is the wall time the attempt took.
func (a *Attempt) Duration() time.Duration {
	if a.CompletedAt.IsZero() {
		return 0
	}
	return a.CompletedAt.Sub(a.StartedAt)
}
