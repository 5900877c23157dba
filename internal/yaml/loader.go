package yaml

import (
	"context"
	"fmt"
	"os"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/vk/yamlrun/internal/config"
	"github.com/vk/yamlrun/internal/ctxlog"
	"github.com/vk/yamlrun/internal/fsutil"
)

// Loader loads YAML configuration files into the config model.
type Loader struct{}

// NewLoader creates a YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the config at path, which may be a single YAML file or a
// directory searched recursively for .yml/.yaml files.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &config.NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("failed to stat config path %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindConfigFiles(path)
		if err != nil {
			return nil, fmt.Errorf("failed to scan config directory %s: %w", path, err)
		}
		logger.Debug("Config directory scanned.", "path", path, "files", len(files))
	}

	doc := &config.Document{}
	seen := make(map[string]string)
	for _, file := range files {
		sections, err := l.loadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		for _, s := range sections {
			if prev, dup := seen[s.Name]; dup {
				return nil, &config.SchemaError{
					Path:    file,
					Section: s.Name,
					Detail:  fmt.Sprintf("duplicate section name, first defined in %s", prev),
				}
			}
			seen[s.Name] = file
			doc.Sections = append(doc.Sections, s)
		}
	}

	logger.Debug("Configuration loaded.", "sections", len(doc.Sections))
	return doc, nil
}

// loadFile parses one YAML file and extracts its command sections in
// declaration order.
func (l *Loader) loadFile(ctx context.Context, path string) ([]*config.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &config.NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var root yamlv3.Node
	if err := yamlv3.Unmarshal(data, &root); err != nil {
		return nil, &config.ParseError{Path: path, Err: err}
	}

	// An empty file decodes to a zero node with no content.
	if len(root.Content) == 0 {
		return nil, nil
	}

	top := resolveAlias(root.Content[0])
	if top.Kind != yamlv3.MappingNode {
		return nil, &config.SchemaError{Path: path, Detail: "top-level document must be a mapping"}
	}

	return extractSections(top, path)
}
