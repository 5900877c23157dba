package runner

import (
	"time"

	"github.com/vk/yamlrun/internal/executor"
)

// StepResult records the outcome of one step.
type StepResult struct {
	// Section is the name of the section the step belongs to.
	Section string
	// Index is the step's position within its section, starting at 0.
	Index int
	// Command is the step's configured command string.
	Command string

	State State
	// Result holds captured output for steps that actually executed.
	Result *executor.Result
	// Err is the failure cause for Failed steps.
	Err error
	// Reason explains why a Skipped step did not run.
	Reason string
}

// Summary aggregates the results of one run.
type Summary struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Results  []*StepResult
}

// Failed reports whether any step of the run failed.
func (s *Summary) Failed() bool {
	for _, r := range s.Results {
		if r.State == Failed {
			return true
		}
	}
	return false
}

// Counts returns the number of results per state.
func (s *Summary) Counts() map[State]int {
	counts := make(map[State]int)
	for _, r := range s.Results {
		counts[r.State]++
	}
	return counts
}

// SectionFailed reports whether any step of the named section failed.
func (s *Summary) SectionFailed(name string) bool {
	for _, r := range s.Results {
		if r.Section == name && r.State == Failed {
			return true
		}
	}
	return false
}
