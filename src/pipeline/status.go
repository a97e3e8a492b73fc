package pipeline

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a single execution unit.
// Units move pending → running → {succeeded, failed}.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the immutable record of one finished execution unit.
type Result struct {
	Job      string // job name
	Cell     string // matrix cell label, "" for non-matrix units
	Advisory bool
	Status   Status
	ExitCode int
	Output   string
	Started  time.Time
	Duration time.Duration
}

// Label returns "job" or "job [cell]" for display.
func (r Result) Label() string {
	if r.Cell == "" {
		return r.Job
	}
	return fmt.Sprintf("%s [%s]", r.Job, r.Cell)
}

// Gating reports whether this result can fail the run.
func (r Result) Gating() bool { return !r.Advisory }

// Aggregate folds unit results into the run status: failed iff at least one
// gating unit failed. Advisory failures are reported but never gate.
func Aggregate(results []Result) Status {
	for _, r := range results {
		if r.Gating() && r.Status == StatusFailed {
			return StatusFailed
		}
	}
	return StatusSucceeded
}

// JobSummary rolls the cells of one job into a single outcome.
type JobSummary struct {
	Job      string
	Advisory bool
	Status   Status // AND of all cells: failed if any cell failed
	Units    int
	Failed   int
	Duration time.Duration // wall time summed across cells
}

// Summarize groups results by job, preserving first-seen job order.
func Summarize(results []Result) []JobSummary {
	index := make(map[string]int)
	var summaries []JobSummary

	for _, r := range results {
		i, ok := index[r.Job]
		if !ok {
			i = len(summaries)
			index[r.Job] = i
			summaries = append(summaries, JobSummary{Job: r.Job, Advisory: r.Advisory, Status: StatusSucceeded})
		}
		s := &summaries[i]
		s.Units++
		s.Duration += r.Duration
		if r.Status == StatusFailed {
			s.Failed++
			s.Status = StatusFailed
		}
	}

	return summaries
}
