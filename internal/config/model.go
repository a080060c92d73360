package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/orgdefaults/internal/metadata"
)

var (
	// ErrNoSettings indicates a settings file without a defaults block.
	ErrNoSettings = errors.New("no organization_defaults declared")
	// ErrUnsupportedFormat indicates a file extension no loader handles.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
	// ErrInvalidProjectName indicates a project name that cannot be used as
	// a file name.
	ErrInvalidProjectName = errors.New("invalid project name")
)

// ValidateProjectName checks that name is non-empty and usable as a single
// path element, since it names the project's output file.
func ValidateProjectName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidProjectName)
	case name == "." || strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q is not a usable file name", ErrInvalidProjectName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q must not contain a path separator", ErrInvalidProjectName, name)
	}
	return nil
}

// Settings is the format-agnostic representation of a root settings file.
type Settings struct {
	// Source is the path the settings were read from.
	Source string
	// Include lists subordinate project directories relative to the
	// settings file. Empty means discover them.
	Include []string
	// Declaration holds the declared defaults, still open for additions
	// such as inferred scm coordinates.
	Declaration *metadata.Declaration
}

// Project is the format-agnostic representation of a project file.
type Project struct {
	Name string
	// Dir is the directory containing the project file.
	Dir       string
	Source    string
	Overrides metadata.Document
}
