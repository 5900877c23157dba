package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vk/yamlrun/internal/config"
	"github.com/vk/yamlrun/internal/ctxlog"
	"github.com/vk/yamlrun/internal/exprs"
	"github.com/vk/yamlrun/internal/registry"
)

// Options configures a single run.
type Options struct {
	// Sections filters which sections execute. Empty selects every section in
	// document order.
	Sections []string

	// ContinueOnError keeps the run going past step failures.
	ContinueOnError bool

	// Passthrough holds CLI arguments substituted for `$@` in commands.
	Passthrough []string

	// Stdout and Stderr receive the live output of executed steps.
	Stdout io.Writer
	Stderr io.Writer

	// BeforeStep and AfterStep are optional lifecycle hooks around each
	// executed step. Skipped steps do not trigger them.
	BeforeStep func(ctx context.Context, section string, step *config.Step)
	AfterStep  func(ctx context.Context, result *StepResult)
}

// Runner executes the steps of a document sequentially.
type Runner struct {
	reg  *registry.Registry
	opts Options
}

// New creates a Runner backed by the given registry.
func New(reg *registry.Registry, opts Options) *Runner {
	return &Runner{reg: reg, opts: opts}
}

// Run executes the selected sections of the document in declaration order and
// returns the aggregated summary. Step failures are reported through the
// summary; the returned error is reserved for failures that prevent the run
// from starting, such as an unknown section name in the filter.
func (r *Runner) Run(ctx context.Context, doc *config.Document) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)

	sections, err := r.selectSections(doc)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	logger = logger.With("run_id", summary.RunID)
	ctx = ctxlog.WithLogger(ctx, logger)

	// Run-scoped environment, shared with handlers so the env_vars module can
	// extend it for later steps.
	runEnv := make(map[string]string)
	// Section name -> success, exposed to `when:` conditions.
	sectionResults := make(map[string]bool)

	halted := false
	for _, section := range sections {
		sectionLogger := logger.With("section", section.Name)
		sectionLogger.Info("▶️ Starting section", "steps", len(section.Steps))

		for i, step := range section.Steps {
			result := r.runStep(ctx, section, i, step, runEnv, sectionResults, halted)
			summary.Results = append(summary.Results, result)

			if result.State == Failed && !r.opts.ContinueOnError && !step.ContinueOnError {
				halted = true
			}
		}

		sectionResults[section.Name] = !summary.SectionFailed(section.Name)
		sectionLogger.Info("🏁 Section finished", "ok", sectionResults[section.Name])
	}

	summary.Duration = time.Since(summary.Started)
	return summary, nil
}

// runStep executes (or skips) a single step and records its result.
func (r *Runner) runStep(
	ctx context.Context,
	section *config.Section,
	index int,
	step *config.Step,
	runEnv map[string]string,
	sectionResults map[string]bool,
	halted bool,
) *StepResult {
	logger := ctxlog.FromContext(ctx).With("section", section.Name, "step", index)
	result := &StepResult{
		Section: section.Name,
		Index:   index,
		Command: step.Command,
		State:   Pending,
	}

	switch {
	case ctx.Err() != nil:
		result.State = Skipped
		result.Reason = "run cancelled"
		logger.Warn("⏭️ Step skipped.", "reason", result.Reason)
		return result
	case halted:
		result.State = Skipped
		result.Reason = "earlier step failed"
		logger.Warn("⏭️ Step skipped.", "reason", result.Reason)
		return result
	}

	if step.When != "" {
		ok, err := exprs.Eval(step.When, exprs.Scope{
			Env:     stepEnv(runEnv, step),
			Results: sectionResults,
		})
		if err != nil {
			result.State = Failed
			result.Err = err
			logger.Error("❌ Step condition failed.", "error", err)
			return result
		}
		if !ok {
			result.State = Skipped
			result.Reason = "condition not met"
			logger.Info("⏭️ Step skipped.", "reason", result.Reason, "when", step.When)
			return result
		}
	}

	handler, ok := r.reg.Resolve(step.RunnerType())
	if !ok {
		// Validation catches this before a run starts; reaching it here means
		// the registry changed underneath us.
		result.State = Failed
		result.Err = fmt.Errorf("unknown runner type %q", step.RunnerType())
		return result
	}

	if r.opts.BeforeStep != nil {
		r.opts.BeforeStep(ctx, section.Name, step)
	}

	stepCtx := ctx
	if step.Timeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, step.Timeout)
		defer cancel()
	}

	result.State = Running
	logger.Info("▶️ Starting step", "command", step.Command, "runner", step.RunnerType())

	execResult, err := handler.Fn(stepCtx, &registry.Request{
		Step:        step,
		RunEnv:      runEnv,
		Passthrough: r.opts.Passthrough,
		Stdout:      r.opts.Stdout,
		Stderr:      r.opts.Stderr,
	})
	result.Result = execResult

	if err != nil {
		result.State = Failed
		result.Err = err
		logger.Error("❌ Step failed.", "error", err)
	} else {
		result.State = Succeeded
		logger.Info("✅ Finished step")
	}

	if r.opts.AfterStep != nil {
		r.opts.AfterStep(ctx, result)
	}
	return result
}

// selectSections resolves the section filter against the document. Unknown
// names fail the run before anything executes.
func (r *Runner) selectSections(doc *config.Document) ([]*config.Section, error) {
	if len(r.opts.Sections) == 0 {
		return doc.Sections, nil
	}

	sections := make([]*config.Section, 0, len(r.opts.Sections))
	for _, name := range r.opts.Sections {
		section := doc.Section(name)
		if section == nil {
			return nil, fmt.Errorf("unknown section %q (available: %s)",
				name, strings.Join(doc.Names(), ", "))
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// stepEnv merges the process environment, the run-scoped environment, and the
// step's own env block, in increasing precedence.
func stepEnv(runEnv map[string]string, step *config.Step) map[string]string {
	merged := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}
	for k, v := range runEnv {
		merged[k] = v
	}
	for k, v := range step.Env {
		merged[k] = v
	}
	return merged
}
