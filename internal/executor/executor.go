package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/vk/yamlrun/internal/ctxlog"
)

// Result holds the captured outcome of one command execution.
type Result struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// ExecutionError reports a command that ran but did not succeed.
type ExecutionError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Invocation describes one command to run.
type Invocation struct {
	Command string
	Env     map[string]string
	Dir     string
	Timeout time.Duration

	// Passthrough replaces `$@` tokens in the command line.
	Passthrough []string

	// Stdout and Stderr receive the live stream; nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// passthroughToken is substituted with the CLI passthrough arguments.
const passthroughToken = "$@"

// Run executes the invocation and returns its result. The result is populated
// even when the command fails; a non-zero exit or a timeout is returned as an
// *ExecutionError.
func Run(ctx context.Context, inv Invocation) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	command := inv.Command
	if strings.Contains(command, passthroughToken) {
		command = strings.ReplaceAll(command, passthroughToken, strings.Join(inv.Passthrough, " "))
	}

	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = inv.Dir
	cmd.Env = mergeEnv(os.Environ(), inv.Env)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	logger.Debug("Starting command.", "command", command)
	started := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &ExecutionError{Command: command, ExitCode: -1, Err: err}
	}

	var stdout, stderr strings.Builder
	var wg sync.WaitGroup
	wg.Add(2)
	go drainStream(&wg, stdoutPipe, inv.Stdout, &stdout)
	go drainStream(&wg, stderrPipe, inv.Stderr, &stderr)
	wg.Wait()

	waitErr := cmd.Wait()
	result := &Result{
		Command:  command,
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(started),
	}

	if waitErr != nil {
		// Distinguish a timeout from an ordinary failure for the caller.
		if ctx.Err() != nil {
			logger.Debug("Command cancelled.", "command", command, "cause", ctx.Err())
			return result, &ExecutionError{Command: command, ExitCode: result.ExitCode, Err: ctx.Err()}
		}
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return result, &ExecutionError{Command: command, ExitCode: result.ExitCode}
		}
		return result, &ExecutionError{Command: command, ExitCode: result.ExitCode, Err: waitErr}
	}

	logger.Debug("Command finished.", "command", command, "duration", result.Duration)
	return result, nil
}

func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}
	merged := make([]string, len(base), len(base)+len(extra))
	copy(merged, base)
	for k, v := range extra {
		merged = append(merged, k+"="+v)
	}
	return merged
}
