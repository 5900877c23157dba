package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given path, which may be a single
	// file or a directory of files, and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Document, error)
}
