package yaml

import (
	"fmt"
	"time"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/vk/yamlrun/internal/config"
)

// extractSections walks a mapping node recursively. Any nested mapping that
// carries a `command` key becomes a section named after its key; other
// mappings only group sections. Declaration order is preserved.
func extractSections(mapping *yamlv3.Node, path string) ([]*config.Section, error) {
	var sections []*config.Section
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		value := resolveAlias(mapping.Content[i+1])
		if value.Kind != yamlv3.MappingNode {
			continue
		}

		if mappingKey(value, "command") == nil {
			nested, err := extractSections(value, path)
			if err != nil {
				return nil, err
			}
			sections = append(sections, nested...)
			continue
		}

		section, err := parseSection(key.Value, value, path)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// parseSection decodes one command mapping into a Section. Every entry of a
// `command` list becomes its own step; the section-level attributes apply to
// each of them.
func parseSection(name string, mapping *yamlv3.Node, path string) (*config.Section, error) {
	section := &config.Section{Name: name}

	// Step template shared by all commands of the section.
	tmpl := config.Step{}
	var commands []string

	schemaErr := func(detail string) error {
		return &config.SchemaError{Path: path, Section: name, Detail: detail}
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		value := resolveAlias(mapping.Content[i+1])

		switch key.Value {
		case "command":
			var err error
			commands, err = parseCommands(value)
			if err != nil {
				return nil, schemaErr(err.Error())
			}
		case "description":
			if err := value.Decode(&section.Description); err != nil {
				return nil, schemaErr("description must be a string")
			}
		case "runner":
			if err := value.Decode(&tmpl.Runner); err != nil {
				return nil, schemaErr("runner must be a string")
			}
		case "workdir":
			if err := value.Decode(&tmpl.Workdir); err != nil {
				return nil, schemaErr("workdir must be a string")
			}
		case "when":
			if err := value.Decode(&tmpl.When); err != nil {
				return nil, schemaErr("when must be an expression string")
			}
		case "env":
			if err := value.Decode(&tmpl.Env); err != nil {
				return nil, schemaErr("env must be a mapping of strings")
			}
		case "timeout":
			var raw string
			if err := value.Decode(&raw); err != nil {
				return nil, schemaErr("timeout must be a duration string")
			}
			d, err := time.ParseDuration(raw)
			if err != nil {
				return nil, schemaErr(fmt.Sprintf("invalid timeout %q: %v", raw, err))
			}
			tmpl.Timeout = d
		case "continue_on_error":
			if err := value.Decode(&tmpl.ContinueOnError); err != nil {
				return nil, schemaErr("continue_on_error must be a boolean")
			}
		default:
			return nil, schemaErr(fmt.Sprintf("unknown key %q", key.Value))
		}
	}

	for _, cmd := range commands {
		step := tmpl
		step.Command = cmd
		step.Env = cloneEnv(tmpl.Env)
		section.Steps = append(section.Steps, &step)
	}
	return section, nil
}

// parseCommands accepts a scalar command or a sequence of scalar commands.
func parseCommands(value *yamlv3.Node) ([]string, error) {
	switch value.Kind {
	case yamlv3.ScalarNode:
		var cmd string
		if err := value.Decode(&cmd); err != nil {
			return nil, fmt.Errorf("command must be a string")
		}
		return []string{cmd}, nil
	case yamlv3.SequenceNode:
		commands := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			item = resolveAlias(item)
			if item.Kind != yamlv3.ScalarNode {
				return nil, fmt.Errorf("command list entries must be strings")
			}
			var cmd string
			if err := item.Decode(&cmd); err != nil {
				return nil, fmt.Errorf("command list entries must be strings")
			}
			commands = append(commands, cmd)
		}
		return commands, nil
	default:
		return nil, fmt.Errorf("command must be a string or a list of strings")
	}
}

// mappingKey returns the value node for the given key, or nil.
func mappingKey(mapping *yamlv3.Node, name string) *yamlv3.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == name {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// resolveAlias follows YAML anchors so callers always see the target node.
func resolveAlias(node *yamlv3.Node) *yamlv3.Node {
	for node.Kind == yamlv3.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func cloneEnv(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}
	clone := make(map[string]string, len(env))
	for k, v := range env {
		clone[k] = v
	}
	return clone
}
