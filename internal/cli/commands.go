package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/orgdefaults/internal/app"
	"github.com/vk/orgdefaults/internal/config"
)

func newShowCommand(v *viper.Viper, outW, errW io.Writer, loader config.Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "show [SETTINGS]",
		Short: "Print the registered organization defaults",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := settingsPath(args)
			if err != nil {
				return err
			}
			a, err := buildApp(v, outW, errW, loader, settings, nil)
			if err != nil {
				return err
			}
			return runtimeError(a.Show(cmd.Context()))
		},
	}
}

func newResolveCommand(v *viper.Viper, outW, errW io.Writer, loader config.Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [SETTINGS]",
		Short: "Print the effective metadata of every project",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := settingsPath(args)
			if err != nil {
				return err
			}
			a, err := buildApp(v, outW, errW, loader, settings, func(c *app.Config) {
				c.Projects = v.GetStringSlice("project")
				c.OutDir = v.GetString("out-dir")
				c.Watch = v.GetBool("watch")
			})
			if err != nil {
				return err
			}
			return runtimeError(a.Resolve(cmd.Context()))
		},
	}

	f := cmd.Flags()
	f.StringSlice("project", nil, "Only resolve the named projects (repeatable).")
	f.String("out-dir", "", "Write one file per project into this directory instead of stdout.")
	f.Bool("watch", false, "Resolve again whenever a configuration file changes.")
	_ = v.BindPFlags(f)
	return cmd
}

func newExplainCommand(v *viper.Viper, outW, errW io.Writer, loader config.Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "explain PROJECT [SETTINGS]",
		Short: "Show where each effective field of a project comes from",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
				return &ExitError{Code: exitUsage, Message: err.Error()}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := settingsPath(args[1:])
			if err != nil {
				return err
			}
			a, err := buildApp(v, outW, errW, loader, settings, nil)
			if err != nil {
				return err
			}
			return runtimeError(a.Explain(cmd.Context(), args[0]))
		},
	}
}

func newCheckCommand(v *viper.Viper, outW, errW io.Writer, loader config.Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "check [SETTINGS]",
		Short: "Report suspicious values in the defaults and project overrides",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := settingsPath(args)
			if err != nil {
				return err
			}
			a, err := buildApp(v, outW, errW, loader, settings, nil)
			if err != nil {
				return err
			}
			n, err := a.Check(cmd.Context())
			if err != nil {
				return runtimeError(err)
			}
			if n > 0 {
				return &ExitError{Code: exitRuntime, Message: fmt.Sprintf("%d problem(s) found", n)}
			}
			return nil
		},
	}
}
