// Package executor invokes external processes for shell steps.
//
// A step's command line runs under `sh -c`, so shell syntax (pipes, globs,
// variable expansion) works. Stdout and stderr are streamed to the run's
// writers as the process produces them while being captured for the step's
// result, one goroutine per stream. A per-step timeout is enforced through
// the context.
package executor
