// Package shell provides the default runner: it executes a step's command as
// an external process.
package shell

import (
	"context"

	"github.com/vk/yamlrun/internal/executor"
	"github.com/vk/yamlrun/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunShell executes the step's command line under `sh -c`, combining the
// run-scoped environment with the step's own env block.
func OnRunShell(ctx context.Context, req *registry.Request) (*executor.Result, error) {
	env := make(map[string]string, len(req.RunEnv)+len(req.Step.Env))
	for k, v := range req.RunEnv {
		env[k] = v
	}
	for k, v := range req.Step.Env {
		env[k] = v
	}

	return executor.Run(ctx, executor.Invocation{
		Command:     req.Step.Command,
		Env:         env,
		Dir:         req.Step.Workdir,
		Passthrough: req.Passthrough,
		Stdout:      req.Stdout,
		Stderr:      req.Stderr,
	})
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("shell", &registry.RegisteredRunner{
		Description: "Run the command as an external process via sh -c.",
		Fn:          OnRunShell,
	})
}
