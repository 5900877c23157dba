package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/vk/yamlrun/internal/config"
	"github.com/vk/yamlrun/internal/ctxlog"
	"github.com/vk/yamlrun/internal/executor"
)

// Module is the interface all modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Request carries everything a handler needs to execute one step.
type Request struct {
	Step *config.Step

	// RunEnv is the run-scoped environment shared by all steps. Handlers may
	// both read it and extend it (the env_vars module does); the runner is
	// single-threaded, so no locking is needed.
	RunEnv map[string]string

	// Passthrough holds the CLI arguments that replace `$@` tokens.
	Passthrough []string

	// Stdout and Stderr are the run's live output writers.
	Stdout io.Writer
	Stderr io.Writer
}

// StepFunc executes a single step and returns its captured result. A non-nil
// error marks the step as failed; the result may still carry partial output.
type StepFunc func(ctx context.Context, req *Request) (*executor.Result, error)

// RegisteredRunner holds the compiled Go parts of a runner type.
type RegisteredRunner struct {
	Description string
	Fn          StepFunc
}

// Registry holds the registered runner handlers for one application instance.
type Registry struct {
	runners map[string]*RegisteredRunner
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{runners: make(map[string]*RegisteredRunner)}
}

// RegisterRunner registers a handler for a runner type. Registering the same
// name twice is a programmer error.
func (r *Registry) RegisterRunner(name string, handler *RegisteredRunner) {
	if _, exists := r.runners[name]; exists {
		panic(fmt.Sprintf("runner handler with name '%s' already registered", name))
	}
	slog.Debug("Registering runner handler.", "name", name)
	r.runners[name] = handler
}

// Resolve returns the handler for a runner type.
func (r *Registry) Resolve(name string) (*RegisteredRunner, bool) {
	handler, ok := r.runners[name]
	return handler, ok
}

// Names returns the registered runner type names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.runners))
	for name := range r.runners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every step of the document names a registered runner
// type. It runs before execution so a bad reference fails the run before any
// side effects.
func (r *Registry) Validate(ctx context.Context, doc *config.Document) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Validating registry against document.", "sections", len(doc.Sections))

	var errs []string
	for _, section := range doc.Sections {
		for _, step := range section.Steps {
			if _, ok := r.runners[step.RunnerType()]; !ok {
				errs = append(errs, fmt.Sprintf(
					"section %q: unknown runner type %q (registered: %s)",
					section.Name, step.RunnerType(), strings.Join(r.Names(), ", ")))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
