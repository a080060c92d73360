package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/orgdefaults/internal/metadata"
)

// ByExtension is a Loader that delegates to a per-extension Loader. Keys are
// lower-case extensions including the dot, e.g. ".hcl".
type ByExtension map[string]Loader

// Extensions returns the registered extensions.
func (b ByExtension) Extensions() []string {
	exts := make([]string, 0, len(b))
	for ext := range b {
		exts = append(exts, ext)
	}
	return exts
}

func (b ByExtension) pick(path string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := b[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return l, nil
}

// LoadSettings implements Loader.
func (b ByExtension) LoadSettings(ctx context.Context, path string) (*Settings, error) {
	l, err := b.pick(path)
	if err != nil {
		return nil, err
	}
	return l.LoadSettings(ctx, path)
}

// LoadProject implements Loader.
func (b ByExtension) LoadProject(ctx context.Context, path string, defaults metadata.Document) (*Project, error) {
	l, err := b.pick(path)
	if err != nil {
		return nil, err
	}
	return l.LoadProject(ctx, path, defaults)
}
