package domain

import "time"

// Run represents a single recorded launch of the external trainer
type Run struct {
	ID           string
	Architecture string
	Depth        int
	ModelDir     string
	LogDir       string
	Command      string
	Status       RunStatus
	StartedAt    time.Time
	FinishedAt   *time.Time
	ElapsedMS    int64
	ExitCode     int
	ErrorMessage string
}

// Outcome is the result of one launch: elapsed wall-clock time, the
// inferred status, and a human-readable summary.
type Outcome struct {
	Status         RunStatus
	Elapsed        time.Duration
	ExitCode       int
	OutputDirFound bool
	Summary        string
}
