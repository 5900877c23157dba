// Package app encapsulates the application's dependencies, configuration,
// and lifecycle: it owns the isolated logger, loads the document through a
// config.Loader, populates and validates the runner registry, and drives the
// run. Embedding consumers construct an App with their own loader and modules
// instead of shelling out to the CLI.
package app
