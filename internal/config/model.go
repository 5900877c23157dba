// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import "time"

// Document is the unified representation of an entire loaded configuration.
// It is immutable once returned by a Loader.
type Document struct {
	Sections []*Section
}

// Section returns the section with the given name, or nil.
func (d *Document) Section(name string) *Section {
	for _, s := range d.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Names returns the section names in declaration order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		names = append(names, s.Name)
	}
	return names
}

// Section is a named, ordered group of steps. In the YAML source it is any
// mapping carrying a `command` key; its name is the mapping key.
type Section struct {
	Name        string
	Description string
	Steps       []*Step
}

// Step is a single unit of work: one command invocation handled by a named
// runner. Most fields are optional refinements; a bare command string in the
// source expands to a Step with defaults.
type Step struct {
	// Runner names the registered handler that executes this step.
	// Empty means the default shell runner.
	Runner string

	// Command is the step's payload. For the shell runner it is the command
	// line; other runners interpret it as they see fit. A `$@` token is
	// replaced with the CLI passthrough arguments at execution time.
	Command string

	// Env holds additional environment variables for this step.
	Env map[string]string

	// Workdir is the working directory the step runs in. Empty means the
	// process working directory.
	Workdir string

	// When is an optional boolean expression source. A step whose condition
	// evaluates to false is recorded as skipped, not executed.
	When string

	// Timeout bounds a single step execution. Zero means no limit.
	Timeout time.Duration

	// ContinueOnError lets the run proceed past a failure of this step even
	// under the default stop-on-first-failure policy.
	ContinueOnError bool
}

// DefaultRunner is the runner type used when a step does not name one.
const DefaultRunner = "shell"

// RunnerType returns the step's runner name, applying the default.
func (s *Step) RunnerType() string {
	if s.Runner == "" {
		return DefaultRunner
	}
	return s.Runner
}
