// Package session runs one build session: it bootstraps the organization
// defaults from the root settings file into a fresh registry, then configures
// every subordinate project against them in parallel.
package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"github.com/vk/orgdefaults/internal/config"
	"github.com/vk/orgdefaults/internal/consumer"
	"github.com/vk/orgdefaults/internal/ctxlog"
	"github.com/vk/orgdefaults/internal/fsutil"
	"github.com/vk/orgdefaults/internal/gitscm"
	"github.com/vk/orgdefaults/internal/metadata"
	"github.com/vk/orgdefaults/internal/registry"
	"golang.org/x/sync/errgroup"
)

// DefaultProjectFiles are the file names that mark a subordinate project.
var DefaultProjectFiles = []string{"project.hcl", "project.yaml", "project.yml"}

// Config controls a Session.
type Config struct {
	// SettingsPath is the root settings file.
	SettingsPath string
	// Projects restricts configuration to the named projects. Empty means all.
	Projects []string
	// ProjectFiles overrides DefaultProjectFiles.
	ProjectFiles []string
	ListStrategy consumer.ListStrategy
	// Strict makes the registry reject a second registration.
	Strict bool
	// InferScm fills in scm coordinates from the git remote when the
	// settings declare none.
	InferScm bool
	// Workers bounds parallel project configuration. Values below 1 mean 1.
	Workers int
}

// Result is the outcome of configuring one project.
type Result struct {
	Project    *config.Project
	Effective  metadata.Document
	Provenance consumer.Provenance
}

// Report is the outcome of a full session run.
type Report struct {
	SessionID string
	Settings  string
	Defaults  metadata.Document
	Projects  []Result
}

// Session owns the registry of one build.
type Session struct {
	ID       string
	cfg      Config
	loader   config.Loader
	registry *registry.Registry
	settings *config.Settings
}

// New creates a session with a fresh, unregistered registry.
func New(loader config.Loader, cfg Config) *Session {
	var opts []registry.Option
	if cfg.Strict {
		opts = append(opts, registry.WithStrict())
	}
	if len(cfg.ProjectFiles) == 0 {
		cfg.ProjectFiles = DefaultProjectFiles
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Session{
		ID:       uuid.NewString(),
		cfg:      cfg,
		loader:   loader,
		registry: registry.New(opts...),
	}
}

// Registry exposes the session's registry to additional consumers.
func (s *Session) Registry() *registry.Registry {
	return s.registry
}

func (s *Session) root() string {
	return filepath.Dir(s.cfg.SettingsPath)
}

// Bootstrap loads the settings file and registers its declaration. It is the
// only writer of the registry; calling it again is a no-op unless the
// session is strict.
func (s *Session) Bootstrap(ctx context.Context) (metadata.Document, error) {
	ctx = ctxlog.With(ctx, "session_id", s.ID)
	logger := ctxlog.FromContext(ctx)

	settings, err := s.loader.LoadSettings(ctx, s.cfg.SettingsPath)
	if err != nil {
		return metadata.Document{}, fmt.Errorf("failed to load settings: %w", err)
	}
	s.settings = settings

	if s.cfg.InferScm && !settings.Declaration.HasScm() {
		scm, err := gitscm.Infer(s.root(), gitscm.DefaultRemote)
		switch {
		case errors.Is(err, gitscm.ErrNoRemote):
			logger.Warn("Cannot infer scm coordinates.", "error", err)
		case err != nil:
			return metadata.Document{}, err
		default:
			logger.Info("Inferred scm coordinates from git remote.", "url", scm.URL)
			settings.Declaration.SetScm(scm)
		}
	}

	registered, err := s.registry.RegisterIfAbsent(ctx, settings.Declaration.Snapshot)
	if err != nil {
		return metadata.Document{}, fmt.Errorf("failed to register defaults from %s: %w", settings.Source, err)
	}
	if registered {
		logger.Info("Organization defaults registered.", "settings", settings.Source)
	}
	return s.registry.Fetch(ctx), nil
}

// Discover returns the project files of the build. Directories listed in the
// settings' include are used as given; otherwise the settings directory is
// searched recursively. Bootstrap must have run first.
func (s *Session) Discover(ctx context.Context) ([]string, error) {
	if s.settings == nil {
		return nil, errors.New("session is not bootstrapped")
	}

	if len(s.settings.Include) == 0 {
		files, err := fsutil.FindFilesByName(s.root(), s.cfg.ProjectFiles...)
		if err != nil {
			return nil, fmt.Errorf("failed to discover projects: %w", err)
		}
		ctxlog.FromContext(ctx).Debug("Discovered project files.", "count", len(files))
		return files, nil
	}

	files := make([]string, 0, len(s.settings.Include))
	seen := make(map[string]bool, len(s.settings.Include))
	for _, inc := range s.settings.Include {
		dir := inc
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(s.root(), inc)
		}
		f := fsutil.FindFirst(dir, s.cfg.ProjectFiles...)
		if f == "" {
			return nil, fmt.Errorf("included project %q has no project file (looked for %v)", inc, s.cfg.ProjectFiles)
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		files = append(files, f)
	}
	return files, nil
}

// ConfigureProjects loads every project file against the registered defaults
// and merges its overrides. Results keep the order of paths.
func (s *Session) ConfigureProjects(ctx context.Context, paths []string) ([]Result, error) {
	ctx = ctxlog.With(ctx, "session_id", s.ID)

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i, path := range paths {
		g.Go(func() error {
			pctx := ctxlog.With(gctx, "project_file", path)
			project, err := s.loader.LoadProject(pctx, path, s.registry.Fetch(pctx))
			if err != nil {
				return err
			}
			adapter := consumer.NewAdapter(s.registry, project.Overrides, consumer.WithListStrategy(s.cfg.ListStrategy))
			effective, trace := adapter.Explain(ctxlog.With(pctx, "project", project.Name))
			results[i] = Result{Project: project, Effective: effective, Provenance: trace}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(results))
	for _, r := range results {
		if prev, ok := seen[r.Project.Name]; ok {
			return nil, fmt.Errorf("project %q is declared by both %s and %s", r.Project.Name, prev, r.Project.Source)
		}
		seen[r.Project.Name] = r.Project.Source
	}

	return s.filter(results)
}

func (s *Session) filter(results []Result) ([]Result, error) {
	if len(s.cfg.Projects) == 0 {
		return results, nil
	}
	var out []Result
	for _, name := range s.cfg.Projects {
		i := slices.IndexFunc(results, func(r Result) bool { return r.Project.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("unknown project %q", name)
		}
		out = append(out, results[i])
	}
	return out, nil
}

// Run bootstraps, discovers and configures all projects.
func (s *Session) Run(ctx context.Context) (*Report, error) {
	defaults, err := s.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	paths, err := s.Discover(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.ConfigureProjects(ctx, paths)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("Build session completed.", "session_id", s.ID, "projects", len(results))
	return &Report{
		SessionID: s.ID,
		Settings:  s.settings.Source,
		Defaults:  defaults,
		Projects:  results,
	}, nil
}
