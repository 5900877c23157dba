// Package env_vars provides a runner that publishes a step's env block into
// the run-scoped environment, making the values visible to every later step
// of the run.
package env_vars

import (
	"context"
	"sort"

	"github.com/vk/yamlrun/internal/ctxlog"
	"github.com/vk/yamlrun/internal/executor"
	"github.com/vk/yamlrun/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunEnvVars copies the step's env block into the shared run environment.
func OnRunEnvVars(ctx context.Context, req *registry.Request) (*executor.Result, error) {
	logger := ctxlog.FromContext(ctx)

	// Sort keys for deterministic logging.
	keys := make([]string, 0, len(req.Step.Env))
	for k := range req.Step.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		req.RunEnv[k] = req.Step.Env[k]
		logger.Debug("Exported run variable.", "key", k)
	}

	return &executor.Result{Command: req.Step.Command}, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("env_vars", &registry.RegisteredRunner{
		Description: "Export the step's env block to all later steps.",
		Fn:          OnRunEnvVars,
	})
}
