// Package cli implements the pmsform command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pmsform/internal/config"
)

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRoot().ExecuteContext(ctx)
}

// env carries the resolved configuration shared by every subcommand.
type env struct {
	configPath string
	catalog    string
	database   string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
	stderr io.Writer
}

// load resolves file, environment and flag settings, in that order of
// precedence from lowest to highest, and installs the logger.
func (e *env) load(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog = e.catalog
	}
	if flags.Changed("db") {
		cfg.Database.Path = e.database
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = e.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	e.cfg = cfg
	e.stderr = cmd.ErrOrStderr()
	e.logger = cfg.Log.NewLogger(e.stderr)
	slog.SetDefault(e.logger)
	return nil
}

// NewRoot builds the command tree.
func NewRoot() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "pmsform",
		Short: "PMS development requirements questionnaire",
		Long: `pmsform collects structured requirements for a property management
system engagement. The questionnaire can be answered on the terminal (run)
or in a browser (serve); answers are stored in a local SQLite database.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&e.configPath, "config", "c", "", "Config file path (YAML or TOML)")
	flags.StringVar(&e.catalog, "catalog", "", "Catalog file (defaults to the bundled PMS questionnaire)")
	flags.StringVar(&e.database, "db", "", "SQLite database path")
	flags.StringVar(&e.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(
		runCmd(e),
		serveCmd(e),
		renderCmd(e),
		schemaCmd(e),
		catalogCmd(e),
		submissionsCmd(e),
		versionCmd(),
	)
	return root
}

// Version is set at build time.
var Version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pmsform version %s\n", Version)
		},
	}
}
