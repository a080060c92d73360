package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/orgdefaults/internal/config"
	"github.com/vk/orgdefaults/internal/ctxlog"
	"github.com/vk/orgdefaults/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. Command output goes to
// outW and logs go to logW.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		loader: loader,
	}
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// newSession starts a fresh build session; every command, and every rebuild
// in watch mode, gets its own registry.
func (a *App) newSession(projects ...string) *session.Session {
	if len(projects) == 0 {
		projects = a.config.Projects
	}
	return session.New(a.loader, session.Config{
		SettingsPath: a.config.SettingsPath,
		Projects:     projects,
		ListStrategy: a.config.listStrategy(),
		Strict:       a.config.Strict,
		InferScm:     a.config.InferScm,
		Workers:      a.config.Workers,
	})
}
