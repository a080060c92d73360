package app

import (
	"github.com/vk/orgdefaults/internal/config"
	"github.com/vk/orgdefaults/internal/hcl"
	"github.com/vk/orgdefaults/internal/yamlcfg"
)

// SettingsFiles are the settings file names looked up when none is given.
var SettingsFiles = []string{"settings.hcl", "settings.yaml", "settings.yml"}

// DefaultLoader dispatches HCL and YAML files to their loaders.
func DefaultLoader() config.Loader {
	y := yamlcfg.NewLoader()
	return config.ByExtension{
		".hcl":  hcl.NewLoader(),
		".yaml": y,
		".yml":  y,
	}
}
