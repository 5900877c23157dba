package yaml

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/yamlrun/internal/config"
	"github.com/vk/yamlrun/internal/ctxlog"
)

// testContext returns a context carrying a quiet logger, as the loader
// expects one to be present.
func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_SectionOrderMatchesDeclaration(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, "main.yml", `
zeta:
  command: echo z
alpha:
  command: echo a
mid:
  command: echo m
`)

	// --- Act ---
	doc, err := NewLoader().Load(testContext(t), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Names(),
		"sections must keep YAML declaration order, not lexical order")
}

func TestLoad_CommandStringAndList(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, "main.yml", `
single:
  command: echo one
multi:
  command:
    - echo first
    - echo second
    - echo third
`)

	// --- Act ---
	doc, err := NewLoader().Load(testContext(t), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, doc.Section("single").Steps, 1)

	multi := doc.Section("multi")
	require.Len(t, multi.Steps, 3)
	require.Equal(t, "echo first", multi.Steps[0].Command)
	require.Equal(t, "echo second", multi.Steps[1].Command)
	require.Equal(t, "echo third", multi.Steps[2].Command)
}

func TestLoad_NestedGroupsFlattenToSections(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// `tools` has no command key, so it only groups the sections below it.
	path := writeConfig(t, "main.yml", `
tools:
  lint:
    command: golangci-lint run
  fmt:
    command: gofmt -l .
deploy:
  command: make deploy
`)

	// --- Act ---
	doc, err := NewLoader().Load(testContext(t), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"lint", "fmt", "deploy"}, doc.Names())
}

func TestLoad_SectionAttributes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, "main.yml", `
build:
  description: compile the project
  command:
    - make generate
    - make build
  env:
    CGO_ENABLED: "0"
  workdir: /tmp
  when: 'env.CI == "true"'
  timeout: 90s
  continue_on_error: true
  runner: shell
`)

	// --- Act ---
	doc, err := NewLoader().Load(testContext(t), path)

	// --- Assert ---
	require.NoError(t, err)
	section := doc.Section("build")
	require.NotNil(t, section)
	require.Equal(t, "compile the project", section.Description)
	require.Len(t, section.Steps, 2)

	for _, step := range section.Steps {
		require.Equal(t, map[string]string{"CGO_ENABLED": "0"}, step.Env)
		require.Equal(t, "/tmp", step.Workdir)
		require.Equal(t, `env.CI == "true"`, step.When)
		require.Equal(t, 90*time.Second, step.Timeout)
		require.True(t, step.ContinueOnError)
		require.Equal(t, "shell", step.RunnerType())
	}
}

func TestLoad_UnknownKeyIsSchemaError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, "main.yml", `
build:
  command: make build
  retries: 3
`)

	// --- Act ---
	_, err := NewLoader().Load(testContext(t), path)

	// --- Assert ---
	var schemaErr *config.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "build", schemaErr.Section)
	require.Contains(t, schemaErr.Error(), "retries")
}

func TestLoad_InvalidTimeoutIsSchemaError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, "main.yml", `
build:
  command: make build
  timeout: soon
`)

	// --- Act ---
	_, err := NewLoader().Load(testContext(t), path)

	// --- Assert ---
	var schemaErr *config.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Contains(t, schemaErr.Error(), "soon")
}

func TestLoad_MalformedYAMLIsParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, "main.yml", "build:\n  command: [unclosed\n")

	// --- Act ---
	_, err := NewLoader().Load(testContext(t), path)

	// --- Assert ---
	var parseErr *config.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoad_MissingPathIsNotFoundError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := NewLoader().Load(testContext(t), filepath.Join(t.TempDir(), "nope.yml"))

	// --- Assert ---
	var notFound *config.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.True(t, errors.Is(notFound.Err, os.ErrNotExist))
}

func TestLoad_DuplicateSectionNamesRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Two groups both declaring a `build` section.
	path := writeConfig(t, "main.yml", `
go:
  build:
    command: make build
rust:
  build:
    command: cargo build
`)

	// --- Act ---
	_, err := NewLoader().Load(testContext(t), path)

	// --- Assert ---
	var schemaErr *config.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Contains(t, schemaErr.Error(), "duplicate")
}

func TestLoad_DirectoryLoadsAllConfigFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"),
		[]byte("alpha:\n  command: echo a\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"),
		[]byte("beta:\n  command: echo b\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte("ignored"), 0600))

	// --- Act ---
	doc, err := NewLoader().Load(testContext(t), dir)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, doc.Names())
}

func TestLoad_EmptyFileYieldsEmptyDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, "main.yml", "")

	// --- Act ---
	doc, err := NewLoader().Load(testContext(t), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Empty(t, doc.Sections)
}

func TestLoad_TopLevelSequenceRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, "main.yml", "- just\n- a\n- list\n")

	// --- Act ---
	_, err := NewLoader().Load(testContext(t), path)

	// --- Assert ---
	var schemaErr *config.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Contains(t, schemaErr.Error(), "mapping")
}
