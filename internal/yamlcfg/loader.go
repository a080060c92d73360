package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vk/orgdefaults/internal/config"
	"github.com/vk/orgdefaults/internal/ctxlog"
	"github.com/vk/orgdefaults/internal/metadata"
	"gopkg.in/yaml.v3"
)

// settingsFile is the top-level structure of a YAML settings file.
type settingsFile struct {
	Include  []string           `yaml:"include"`
	Defaults *metadata.Document `yaml:"organization_defaults"`
}

// projectFile is the top-level structure of a YAML project file.
type projectFile struct {
	Project   string            `yaml:"project"`
	Overrides metadata.Document `yaml:"overrides"`
}

// Loader is the YAML implementation of config.Loader. It holds no state
// beyond its options and is safe for concurrent use.
type Loader struct {
	lookupEnv func(string) (string, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLookupEnv replaces os.LookupEnv for ${NAME} expansion.
func WithLookupEnv(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) { l.lookupEnv = fn }
}

// NewLoader creates a new YAML configuration loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{lookupEnv: os.LookupEnv}
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

// ParseSettings decodes settings from src.
func (l *Loader) ParseSettings(ctx context.Context, src []byte, filename string) (*config.Settings, error) {
	ctxlog.FromContext(ctx).Debug("Parsing YAML settings file.", "file", filename)

	var root settingsFile
	if err := decodeStrict(src, &root); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}
	if root.Defaults == nil {
		return nil, fmt.Errorf("%s: %w", filename, config.ErrNoSettings)
	}

	doc := *root.Defaults
	if err := l.expandScalars(&doc.Scalars, metadata.Empty(), false); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return &config.Settings{
		Source:      filename,
		Include:     root.Include,
		Declaration: declare(doc),
	}, nil
}

// LoadProject reads and decodes a project file.
func (l *Loader) LoadProject(ctx context.Context, path string, defaults metadata.Document) (*config.Project, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return l.ParseProject(ctx, src, path, defaults)
}

// ParseProject decodes a project from src, expanding ${defaults.<field>}
// references against defaults.
func (l *Loader) ParseProject(ctx context.Context, src []byte, filename string, defaults metadata.Document) (*config.Project, error) {
	ctxlog.FromContext(ctx).Debug("Parsing YAML project file.", "file", filename)

	var root projectFile
	if err := decodeStrict(src, &root); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}
	if root.Project == "" {
		return nil, fmt.Errorf("invalid project file %s: missing \"project\" name", filename)
	}
	if err := config.ValidateProjectName(root.Project); err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", filename, err)
	}
	if err := l.expandScalars(&root.Overrides.Scalars, defaults, true); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return &config.Project{
		Name:      root.Project,
		Dir:       filepath.Dir(filename),
		Source:    filename,
		Overrides: declare(root.Overrides).Snapshot(),
	}, nil
}

// decodeStrict rejects unknown keys, the way the HCL schema does. An empty
// document decodes to the zero value.
func decodeStrict(src []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// expandScalars resolves ${NAME} references in every scalar field.
func (l *Loader) expandScalars(s *metadata.Scalars, defaults metadata.Document, allowDefaults bool) error {
	var unknown []string
	mapping := func(name string) string {
		if field, ok := strings.CutPrefix(name, "defaults."); ok && allowDefaults {
			f := metadata.Field(field)
			if !f.IsScalar() {
				unknown = append(unknown, name)
				return ""
			}
			v, _ := defaults.Get(f)
			return v
		}
		v, _ := l.lookupEnv(name)
		return v
	}

	for _, f := range metadata.ScalarFields() {
		v, ok := metadata.Document{Scalars: *s}.Get(f)
		if !ok || !strings.Contains(v, "${") {
			continue
		}
		if err := s.Set(f, expand(v, mapping)); err != nil {
			return err
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown defaults reference: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// refPattern matches a ${NAME} reference or the $${ escape.
var refPattern = regexp.MustCompile(`\$\$\{|\$\{([^}]*)\}`)

// expand replaces ${NAME} references using mapping. "$${" yields a literal
// "${"; any other "$" is kept as is.
func expand(s string, mapping func(string) string) string {
	return refPattern.ReplaceAllStringFunc(s, func(m string) string {
		if m == "$${" {
			return "${"
		}
		return mapping(m[2 : len(m)-1])
	})
}

// declare replays a decoded document onto a fresh declaration so that
// settings stay open for later additions such as inferred scm coordinates.
func declare(doc metadata.Document) *metadata.Declaration {
	d := metadata.NewDeclaration()
	d.Scalars = doc.Scalars
	if doc.Licenses != nil {
		d.Licenses(func(l *metadata.List[metadata.License]) {
			for _, e := range doc.Licenses {
				l.Add(e)
			}
		})
	}
	if doc.Developers != nil {
		d.Developers(func(l *metadata.List[metadata.Developer]) {
			for _, e := range doc.Developers {
				l.Add(e)
			}
		})
	}
	if doc.MailingLists != nil {
		d.MailingLists(func(l *metadata.List[metadata.MailingList]) {
			for _, e := range doc.MailingLists {
				l.Add(e)
			}
		})
	}
	if doc.Organization != nil {
		d.SetOrganization(*doc.Organization)
	}
	if doc.IssueManagement != nil {
		d.SetIssueManagement(*doc.IssueManagement)
	}
	if doc.Scm != nil {
		d.SetScm(*doc.Scm)
	}
	return d
}
