package core_execution

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/yamlrun/internal/app"
	"github.com/vk/yamlrun/internal/executor"
	"github.com/vk/yamlrun/internal/registry"
)

// recordModule registers a `record` runner appending executed commands to a
// shared slice. The runner is single-threaded, so no locking is needed.
type recordModule struct {
	executed *[]string
}

func (m *recordModule) Register(r *registry.Registry) {
	r.RegisterRunner("record", &registry.RegisteredRunner{
		Description: "test runner recording execution order",
		Fn: func(ctx context.Context, req *registry.Request) (*executor.Result, error) {
			*m.executed = append(*m.executed, req.Step.Command)
			return &executor.Result{Command: req.Step.Command}, nil
		},
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestExecutionOrderFollowsDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, `
first:
  runner: record
  command:
    - one
    - two
second:
  runner: record
  command: three
`)
	var executed []string
	testApp, _ := app.SetupAppTest(t,
		&app.Config{ConfigPath: path, RunAll: true},
		&recordModule{executed: &executed},
	)

	// --- Act ---
	summary, err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two", "three"}, executed)
	require.False(t, summary.Failed())
}

func TestSectionFilterRunsOnlySelected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, `
setup:
  runner: record
  command: prepare
test:
  runner: record
  command: verify
cleanup:
  runner: record
  command: teardown
`)
	var executed []string
	testApp, _ := app.SetupAppTest(t,
		&app.Config{ConfigPath: path, Sections: []string{"test"}},
		&recordModule{executed: &executed},
	)

	// --- Act ---
	summary, err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"verify"}, executed)
	require.Len(t, summary.Results, 1)
}

func TestEnvVarsModuleFeedsLaterShellSteps(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, `
vars:
  runner: env_vars
  command: export run variables
  env:
    GREETING: bonjour
greet:
  command: echo "$GREETING"
`)
	testApp, logBuffer := app.SetupAppTest(t, &app.Config{ConfigPath: path, RunAll: true})

	// --- Act ---
	summary, err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, summary.Failed())
	require.Contains(t, logBuffer.String(), "bonjour",
		"the exported variable must be visible to the later shell step")
}

func TestPassthroughArgsReachShellSteps(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, `
echo_all:
  description: echo all passthrough arguments
  command: echo $@
`)
	testApp, logBuffer := app.SetupAppTest(t, &app.Config{
		ConfigPath:  path,
		Sections:    []string{"echo_all"},
		Passthrough: []string{"alpha", "beta"},
	})

	// --- Act ---
	summary, err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, summary.Failed())
	require.Contains(t, logBuffer.String(), "alpha beta")
}

func TestConditionSkipsStepWithoutFailing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, `
guarded:
  runner: record
  command: never
  when: 'env.PATH == ""'
`)
	var executed []string
	testApp, _ := app.SetupAppTest(t,
		&app.Config{ConfigPath: path, RunAll: true},
		&recordModule{executed: &executed},
	)

	// --- Act ---
	summary, err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Empty(t, executed)
	require.False(t, summary.Failed())
}
