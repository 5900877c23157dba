package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath is the YAML file or directory of YAML files to load.
	ConfigPath string

	// Sections are the section names to execute, in the order given. Empty
	// together with RunAll=false means "list sections and exit".
	Sections []string

	// RunAll executes every section in document order.
	RunAll bool

	// List prints the available sections instead of running anything.
	List bool

	// ContinueOnError keeps the run going past step failures.
	ContinueOnError bool

	// Passthrough holds CLI arguments substituted for `$@` in commands.
	Passthrough []string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
