package app

import (
	"context"
	"fmt"

	"github.com/vk/yamlrun/internal/ctxlog"
	"github.com/vk/yamlrun/internal/runner"
)

// Run executes the configured sections and returns the run summary. With no
// sections selected (and RunAll unset) it lists the available sections
// instead, which mirrors invoking the tool without a section argument.
//
// Step failures surface both in the summary and as a non-nil error so the
// CLI can map them to an exit code.
func (a *App) Run(ctx context.Context) (*runner.Summary, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.cfg.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx)
		defer a.closeHealthcheckServer(ctx)
	}

	if a.cfg.List || (len(a.cfg.Sections) == 0 && !a.cfg.RunAll) {
		a.printSections()
		return &runner.Summary{}, nil
	}

	run := runner.New(a.registry, runner.Options{
		Sections:        a.cfg.Sections,
		ContinueOnError: a.cfg.ContinueOnError,
		Passthrough:     a.cfg.Passthrough,
		Stdout:          a.stdout,
		Stderr:          a.stderr,
	})

	a.logger.Info("🚀 Starting run.", "sections", a.cfg.Sections, "continue_on_error", a.cfg.ContinueOnError)
	summary, err := run.Run(ctx, a.doc)
	if err != nil {
		return nil, err
	}

	counts := summary.Counts()
	a.logger.Info("🏁 Run finished.",
		"run_id", summary.RunID,
		"duration", summary.Duration,
		"succeeded", counts[runner.Succeeded],
		"failed", counts[runner.Failed],
		"skipped", counts[runner.Skipped],
	)

	if summary.Failed() {
		return summary, fmt.Errorf("run failed: %d of %d step(s) failed",
			counts[runner.Failed], len(summary.Results))
	}
	return summary, nil
}

// printSections writes the available sections and their descriptions.
func (a *App) printSections() {
	fmt.Fprintln(a.outW, "Available sections:")
	for _, section := range a.doc.Sections {
		if section.Description != "" {
			fmt.Fprintf(a.outW, "  %-24s %s\n", section.Name, section.Description)
		} else {
			fmt.Fprintf(a.outW, "  %s\n", section.Name)
		}
	}
	fmt.Fprintln(a.outW, "\nRun one with: yamlrun --config <path> SECTION")
}
