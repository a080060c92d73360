package config

import (
	"context"

	"github.com/vk/orgdefaults/internal/metadata"
)

// Loader is the interface for a format-specific configuration loader.
//
// Settings are loaded before anything is registered. Projects are loaded
// afterwards and receive the registered defaults so that formats with an
// expression language can refer to them.
type Loader interface {
	LoadSettings(ctx context.Context, path string) (*Settings, error)
	LoadProject(ctx context.Context, path string, defaults metadata.Document) (*Project, error)
}
