// Package runner orchestrates the sequential execution of a loaded document.
//
// Steps run one at a time, in declaration order, section by section. The
// default policy stops at the first failure and records the remaining steps
// as skipped; continue-on-error (global or per step) runs everything and
// reports every failure. The runner owns the aggregated results and returns
// them as a Summary; it never mutates the document.
package runner
