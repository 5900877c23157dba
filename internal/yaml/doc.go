// Package yaml implements config.Loader for YAML documents.
//
// The schema follows the convention of the tool's configuration files: any
// mapping that carries a `command` key is a runnable section, and its name is
// the mapping key. Mappings without a `command` key group nested sections.
// Parsing works on the yaml.v3 node tree rather than plain maps so that the
// declaration order of sections survives loading; execution order is defined
// by that order.
package yaml
