package downloader

import (
	"io"
	"time"
)

// FetchOutcome classifies the result of one fetch
type FetchOutcome int

const (
	// OutcomeSaved means the body was written and progress advanced
	OutcomeSaved FetchOutcome = iota
	// OutcomeAbortRun means no further (year, month) pairs may be fetched
	OutcomeAbortRun
	// OutcomeSkippedTransient means the month was skipped and the run continues
	OutcomeSkippedTransient
)

// String returns the string representation of the outcome
func (o FetchOutcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeAbortRun:
		return "abort_run"
	case OutcomeSkippedTransient:
		return "skipped_transient"
	default:
		return "unknown"
	}
}

// RunStatus is the terminal state of a bulk download run
type RunStatus int

const (
	// RunCompleted means every (year, month) pair was attempted
	RunCompleted RunStatus = iota
	// RunAborted means an abort condition stopped the loop early
	RunAborted
)

// String returns the string representation of the run status
func (s RunStatus) String() string {
	switch s {
	case RunCompleted:
		return "completed"
	case RunAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// FetchTarget is one (year, month) request and its destination file
type FetchTarget struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	URL   string `json:"url"`
	Path  string `json:"path"`
}

// Response is the part of an HTTP response the loop inspects
type Response struct {
	StatusCode  int
	Status      string
	ContentType string
	URL         string
	Body        io.ReadCloser
}

// RunResult summarizes a finished run
type RunResult struct {
	RunID    string        `json:"run_id"`
	Status   RunStatus     `json:"status"`
	Reason   error         `json:"reason,omitempty"`
	Attempts int           `json:"attempts"`
	Saved    int           `json:"saved"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// Completed reports whether every (year, month) pair was attempted
func (r *RunResult) Completed() bool {
	return r.Status == RunCompleted
}
