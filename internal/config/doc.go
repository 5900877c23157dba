// Package config defines the format-agnostic model for a loaded command
// configuration, the Loader seam that format-specific parsers implement, and
// the error taxonomy surfaced when loading fails.
//
// The model is deliberately dumb: a Document is an ordered list of Sections,
// a Section an ordered list of Steps. The order of both matches declaration
// order in the source document, and nothing mutates a Document after Load
// returns. Execution semantics live in the runner, not here.
package config
