// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// configExtensions are the file suffixes recognised as YAML configuration.
var configExtensions = []string{".yml", ".yaml"}

// FindConfigFiles recursively searches the given root path for YAML
// configuration files. The returned paths are sorted so that a directory of
// configs always loads in a stable order.
func FindConfigFiles(rootPath string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range configExtensions {
			if strings.HasSuffix(d.Name(), ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
