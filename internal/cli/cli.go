package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/yamlrun/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Everything after a literal `--` is collected as passthrough arguments and
// substituted for `$@` tokens in commands.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	args, passthrough := splitPassthrough(args)

	flagSet := flag.NewFlagSet("yamlrun", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
yamlrun - run commands defined in a YAML configuration file.

Usage:
  yamlrun [options] [SECTION ...] [-- PASSTHROUGH ...]

Arguments:
  SECTION
    Name of a config section to run. Repeatable; sections run in the order
    given. With no SECTION the available sections are listed instead.
  PASSTHROUGH
    Arguments after -- replace any $@ token in the configured commands.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the YAML config file or directory.")
	cFlag := flagSet.String("c", "", "Path to the YAML config file or directory (shorthand).")
	listFlag := flagSet.Bool("list", false, "List the available sections and exit.")
	allFlag := flagSet.Bool("all", false, "Run every section in document order.")
	continueFlag := flagSet.Bool("continue-on-error", false, "Keep running after a step fails and report all failures.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	configPath := *configFlag
	if configPath == "" {
		configPath = *cFlag
	}
	if configPath == "" {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "a YAML config is required: pass -c/--config <path>"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:      configPath,
		Sections:        flagSet.Args(),
		RunAll:          *allFlag,
		List:            *listFlag,
		ContinueOnError: *continueFlag,
		Passthrough:     passthrough,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// splitPassthrough separates the arguments after the first bare `--`.
func splitPassthrough(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}
