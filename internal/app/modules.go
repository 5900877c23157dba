package app

import (
	"github.com/vk/yamlrun/internal/registry"

	"github.com/vk/yamlrun/modules/env_vars"
	"github.com/vk/yamlrun/modules/print"
	"github.com/vk/yamlrun/modules/shell"
)

// CoreModules returns the runner modules registered by default: shell (the
// default runner type), print, and env_vars. Consumers that pass their own
// modules to New replace this set; append to CoreModules() to extend it.
func CoreModules() []registry.Module {
	return []registry.Module{
		&shell.Module{},
		&print.Module{},
		&env_vars.Module{},
	}
}
