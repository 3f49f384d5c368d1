// Package cli implements the siteops operator command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ycsite/siteops/internal/app"
	"github.com/ycsite/siteops/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	StorePath  string
	Format     string // "text" | "json" | "yaml"
	Verbose    bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the siteops CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "siteops",
		Short:   "Construction site operations console",
		Long:    "Inspect and operate the local site store: dashboard, daily reports, tasks, inventory, weather and the site assistant.",
		Version: app.BuildVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $CONFIG_PATH or ./config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.StorePath, "store", "", "override store.path")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging to stderr")

	cmd.AddCommand(NewDashboardCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewTasksCommand(opts))
	cmd.AddCommand(NewInventoryCommand(opts))
	cmd.AddCommand(NewAskCommand(opts))
	cmd.AddCommand(NewWeatherCommand(opts))
	cmd.AddCommand(NewDBCommand(opts))

	return cmd
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// loadConfig resolves the configuration with flag overrides applied.
func (o *RootOptions) loadConfig() (*config.Config, error) {
	path := o.ConfigPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}
	if o.StorePath != "" {
		cfg.Store.Path = o.StorePath
	}
	return cfg, nil
}

func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openApp loads the configuration and opens the store. The caller must
// Close the returned App.
func (o *RootOptions) openApp(ctx context.Context, cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, cfg, o.logger(cmd.ErrOrStderr()))
	if err != nil {
		return nil, WrapExitError(ExitStoreError, "open store", err)
	}
	return a, nil
}
