// Package print provides a runner that writes its command text to the run's
// output instead of executing anything. Useful for diagnostics and dry-run
// style sections.
package print

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/yamlrun/internal/ctxlog"
	"github.com/vk/yamlrun/internal/executor"
	"github.com/vk/yamlrun/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunPrint echoes the step's command text, applying `$@` substitution the
// same way the shell runner would.
func OnRunPrint(ctx context.Context, req *registry.Request) (*executor.Result, error) {
	ctxlog.FromContext(ctx).Debug("Printing step text.")

	text := req.Step.Command
	if strings.Contains(text, "$@") {
		text = strings.ReplaceAll(text, "$@", strings.Join(req.Passthrough, " "))
	}

	if req.Stdout != nil {
		fmt.Fprintln(req.Stdout, text)
	}

	return &executor.Result{
		Command: req.Step.Command,
		Stdout:  text + "\n",
	}, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("print", &registry.RegisteredRunner{
		Description: "Print the command text without executing it.",
		Fn:          OnRunPrint,
	})
}
