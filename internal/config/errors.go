package config

import "fmt"

// NotFoundError reports a configuration path that does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError reports a document that is not well-formed YAML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a well-formed document that violates the expected
// section/step structure.
type SchemaError struct {
	Path    string
	Section string
	Detail  string
}

func (e *SchemaError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("invalid config %s: section %q: %s", e.Path, e.Section, e.Detail)
	}
	return fmt.Sprintf("invalid config %s: %s", e.Path, e.Detail)
}
