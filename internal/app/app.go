package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/vk/yamlrun/internal/config"
	"github.com/vk/yamlrun/internal/ctxlog"
	"github.com/vk/yamlrun/internal/registry"
)

// App ties together the loaded document, the registry, and the run lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	doc      *config.Document
	cfg      *Config

	// stdout and stderr receive the live output of executed steps,
	// independent of the logger's writer.
	stdout io.Writer
	stderr io.Writer

	httpServer *http.Server
}

// New constructs a fully initialized App: isolated logger, document loaded
// through the given loader, registry populated and validated. A failure to
// load or validate the configuration is a fatal startup error and panics; the
// CLI entrypoint recovers it into a clean exit.
func New(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	doc, err := loader.Load(ctx, cfg.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded.", "sections", len(doc.Sections))

	reg := registry.New()
	if len(modules) == 0 {
		modules = CoreModules()
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All modules registered.", "count", len(modules), "runners", reg.Names())

	if err := reg.Validate(ctx, doc); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		doc:      doc,
		cfg:      cfg,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// SetOutput redirects the live step output streams. This is primarily for
// tests and embedding consumers.
func (a *App) SetOutput(stdout, stderr io.Writer) {
	a.stdout = stdout
	a.stderr = stderr
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Document returns the loaded configuration document.
func (a *App) Document() *config.Document {
	return a.doc
}
