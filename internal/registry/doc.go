// Package registry is the glue between step definitions and the Go handlers
// that execute them.
//
// A Registry maps runner type names (the `runner:` key of a section) to
// registered handler functions. Core modules register themselves at startup;
// embedding consumers inject additional modules through app.New, which is the
// supported way to extend command resolution without touching the run loop.
// Before any step runs, the registry is validated against the loaded document
// so an unknown runner type fails the run up front instead of mid-sequence.
package registry
