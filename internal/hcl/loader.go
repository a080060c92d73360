package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/orgdefaults/internal/config"
	"github.com/vk/orgdefaults/internal/ctxlog"
	"github.com/vk/orgdefaults/internal/metadata"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
// It is safe for concurrent use; every call uses its own parser.
type Loader struct {
	lookupEnv func(string) (string, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLookupEnv replaces os.LookupEnv as the source of the env() function.
func WithLookupEnv(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) { l.lookupEnv = fn }
}

// NewLoader creates a new HCL configuration loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ config.Loader = (*Loader)(nil)

// LoadSettings reads and decodes a settings file.
func (l *Loader) LoadSettings(ctx context.Context, path string) (*config.Settings, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return l.ParseSettings(ctx, src, path)
}

// ParseSettings decodes settings from src; filename is used for diagnostics
// and to resolve relative include paths.
func (l *Loader) ParseSettings(ctx context.Context, src []byte, filename string) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx).With("file", filename)
	logger.Debug("Parsing HCL settings file.")

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root settingsFile
	diags = gohcl.DecodeBody(file.Body, l.settingsEvalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	if root.Defaults == nil {
		return nil, fmt.Errorf("%s: %w", filename, config.ErrNoSettings)
	}

	settings := &config.Settings{
		Source:      filename,
		Include:     root.Include,
		Declaration: translateDefaults(root.Defaults),
	}
	logger.Debug("HCL settings decoded.", "include", len(settings.Include))
	return settings, nil
}

// LoadProject reads and decodes a project file, evaluating its expressions
// against the given defaults.
func (l *Loader) LoadProject(ctx context.Context, path string, defaults metadata.Document) (*config.Project, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return l.ParseProject(ctx, src, path, defaults)
}

// ParseProject decodes a project from src.
func (l *Loader) ParseProject(ctx context.Context, src []byte, filename string, defaults metadata.Document) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx).With("file", filename)
	logger.Debug("Parsing HCL project file.")

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root projectFile
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	block, diags := uniqueProject(file, root.Projects)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid project file %s: %w", filename, diags)
	}

	if err := config.ValidateProjectName(block.Name); err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", filename, err)
	}

	evalCtx, err := l.projectEvalContext(defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to expose defaults to %s: %w", filename, err)
	}

	var body hclDefaults
	diags = gohcl.DecodeBody(block.Body, evalCtx, &body)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode project %q in %s: %w", block.Name, filename, diags)
	}

	project := &config.Project{
		Name:      block.Name,
		Dir:       filepath.Dir(filename),
		Source:    filename,
		Overrides: translateDefaults(&body).Snapshot(),
	}
	logger.Debug("HCL project decoded.", "project", project.Name)
	return project, nil
}

// uniqueProject checks that the file holds exactly one project block.
func uniqueProject(file *hcl.File, projects []*hclProject) (*hclProject, hcl.Diagnostics) {
	switch len(projects) {
	case 1:
		return projects[0], nil
	case 0:
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Missing \"project\" block",
			Detail:   "A project file must contain exactly one \"project\" block.",
			Subject:  file.Body.MissingItemRange().Ptr(),
		}}
	default:
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Duplicate \"project\" block",
			Detail:   "Only one \"project\" block is allowed per file.",
			Subject:  projects[1].Body.MissingItemRange().Ptr(),
		}}
	}
}
