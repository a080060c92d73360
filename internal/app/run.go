package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/orgdefaults/internal/metadata"
	"github.com/vk/orgdefaults/internal/render"
	"github.com/vk/orgdefaults/internal/watch"
)

// Show prints the registered organization defaults.
func (a *App) Show(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Show started.")

	defaults, err := a.newSession().Bootstrap(ctx)
	if err != nil {
		return err
	}
	return render.Defaults(a.outW, a.config.format(), defaults)
}

// Resolve prints, or writes to the output directory, the effective metadata
// of every selected project. In watch mode it keeps resolving on every
// configuration change until ctx is cancelled.
func (a *App) Resolve(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Resolve started.", "watch", a.config.Watch)

	if !a.config.Watch {
		_, err := a.resolveOnce(ctx)
		return err
	}

	w, err := watch.New(watch.DefaultDebounce, ".hcl", ".yaml", ".yml")
	if err != nil {
		return err
	}
	defer w.Close()
	if a.config.OutDir != "" {
		outDir, err := filepath.Abs(a.config.OutDir)
		if err != nil {
			return err
		}
		w.Ignore(func(path string) bool { return isWithin(outDir, path) })
	}
	return w.Run(ctx, a.resolveOnce)
}

// resolveOnce runs one session and returns the directories it read from.
func (a *App) resolveOnce(ctx context.Context) ([]string, error) {
	report, err := a.newSession().Run(ctx)
	if err != nil {
		return nil, err
	}

	if a.config.OutDir != "" {
		paths, err := render.WriteFiles(ctx, a.config.OutDir, a.config.format(), report.Projects)
		if err != nil {
			return nil, err
		}
		a.logger.Info("Effective metadata written.", "files", len(paths), "dir", a.config.OutDir)
	} else if err := render.Report(a.outW, a.config.format(), report); err != nil {
		return nil, err
	}

	dirs := []string{filepath.Dir(report.Settings)}
	for _, r := range report.Projects {
		dirs = append(dirs, r.Project.Dir)
	}
	return dirs, nil
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Explain prints where every effective field of one project comes from.
func (a *App) Explain(ctx context.Context, project string) error {
	ctx = a.context(ctx)

	report, err := a.newSession(project).Run(ctx)
	if err != nil {
		return err
	}
	if len(report.Projects) != 1 {
		return fmt.Errorf("expected exactly one project %q, got %d", project, len(report.Projects))
	}
	return render.Provenance(a.outW, report.Projects[0])
}

// Check validates the defaults and every project's overrides and prints the
// findings. It returns the number of findings.
func (a *App) Check(ctx context.Context) (int, error) {
	ctx = a.context(ctx)

	report, err := a.newSession().Run(ctx)
	if err != nil {
		return 0, err
	}

	bySource := map[string][]metadata.Finding{}
	if f := metadata.Check(report.Defaults); len(f) > 0 {
		bySource[report.Settings] = f
	}
	for _, r := range report.Projects {
		if f := metadata.Check(r.Project.Overrides); len(f) > 0 {
			bySource[r.Project.Source] = f
		}
	}
	n, err := render.Findings(a.outW, bySource)
	if err != nil {
		return n, err
	}
	a.logger.Debug("Check finished.", "findings", n, "projects", len(report.Projects))
	return n, nil
}
