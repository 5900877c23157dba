// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package runner

// State is the execution state of a step within a run.
type State int32

const (
	// Pending means the step has not started yet.
	Pending State = iota
	// Running means the step is currently executing.
	Running
	// Succeeded means the step finished without error.
	Succeeded
	// Failed means the step executed and reported an error.
	Failed
	// Skipped means the step never executed: its condition was false, an
	// earlier step failed under the stop-on-first-failure policy, or the run
	// context was cancelled.
	Skipped
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}
