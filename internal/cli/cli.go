package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/orgdefaults/internal/app"
	"github.com/vk/orgdefaults/internal/config"
	"github.com/vk/orgdefaults/internal/fsutil"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const (
	exitRuntime = 1
	exitUsage   = 2
)

// EnvPrefix prefixes environment variables that set flags, e.g.
// ORGDEFAULTS_LOG_LEVEL=debug.
const EnvPrefix = "ORGDEFAULTS"

// Execute runs the command line in args. Errors are always *ExitError.
func Execute(ctx context.Context, outW, errW io.Writer, args []string, loader config.Loader) error {
	root := NewRootCommand(outW, errW, loader)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra reports itself (unknown command, bad arguments) is a
	// usage error.
	return &ExitError{Code: exitUsage, Message: err.Error()}
}

// NewRootCommand builds the command tree. Each call uses its own viper
// instance, so commands can be built repeatedly in tests.
func NewRootCommand(outW, errW io.Writer, loader config.Loader) *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "orgdefaults",
		Short: "Share organization project metadata defaults across a multi-project build",
		Long: `orgdefaults reads organization-wide project metadata (group id, licenses,
developers, scm, ...) from a root settings file and merges each subordinate
project's overrides over it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cfgFile)
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: exitUsage, Message: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML file providing flag values")
	pf.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.String("format", "json", "Output format. Options: 'json', 'yaml', 'hcl'.")
	pf.String("list-strategy", "replace", "How project lists combine with defaults. Options: 'replace', 'append'.")
	pf.Bool("strict", false, "Fail when defaults are registered twice.")
	pf.Bool("infer-scm", false, "Derive scm coordinates from the git remote when none are declared.")
	pf.Int("workers", 4, "Number of projects configured concurrently.")
	_ = v.BindPFlags(pf)

	root.AddCommand(
		newShowCommand(v, outW, errW, loader),
		newResolveCommand(v, outW, errW, loader),
		newExplainCommand(v, outW, errW, loader),
		newCheckCommand(v, outW, errW, loader),
	)
	return root
}

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return &ExitError{Code: exitUsage, Message: fmt.Sprintf("failed to read config file: %v", err)}
	}
	return nil
}

// settingsPath picks the settings file from the positional argument or
// from the current directory.
func settingsPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if p := fsutil.FindFirst(".", app.SettingsFiles...); p != "" {
		return p, nil
	}
	return "", &ExitError{
		Code:    exitUsage,
		Message: fmt.Sprintf("no settings file given and none of %s found in the current directory", strings.Join(app.SettingsFiles, ", ")),
	}
}

// buildApp validates the merged flag/env/config values into an app.Config.
func buildApp(v *viper.Viper, outW, errW io.Writer, loader config.Loader, settings string, mutate func(*app.Config)) (*app.App, error) {
	cfg := app.Config{
		SettingsPath: settings,
		Format:       strings.ToLower(v.GetString("format")),
		ListStrategy: strings.ToLower(v.GetString("list-strategy")),
		Strict:       v.GetBool("strict"),
		InferScm:     v.GetBool("infer-scm"),
		Workers:      v.GetInt("workers"),
		LogFormat:    strings.ToLower(v.GetString("log-format")),
		LogLevel:     strings.ToLower(v.GetString("log-level")),
	}
	if mutate != nil {
		mutate(&cfg)
	}

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return nil, &ExitError{Code: exitUsage, Message: err.Error()}
	}
	return app.NewApp(outW, errW, appConfig, loader), nil
}

func runtimeError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: exitRuntime, Message: err.Error()}
}

// maxArgs is cobra.MaximumNArgs reported as a usage error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return &ExitError{Code: exitUsage, Message: err.Error()}
		}
		return nil
	}
}
