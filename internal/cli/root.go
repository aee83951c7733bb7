// Package cli provides the command-line interface for fluent.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hasbyte1/go-fluent/collections"
	"github.com/hasbyte1/go-fluent/config"
	"github.com/hasbyte1/go-fluent/internal/cli/commands"
	"github.com/hasbyte1/go-fluent/starmacro"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "fluent",
		Short: "fluent - query and reshape JSON and YAML documents",
		Long: `fluent applies container operations (where, sortBy, groupBy, set, ...)
to JSON and YAML documents from the command line.

Operations written in Starlark are loaded from the macros directory and
called as <file>.<function>.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}

			reg := collections.NewRegistry()
			names, err := starmacro.NewLoader(cfg.MacrosDir, logger).Load(reg)
			if err != nil {
				return fmt.Errorf("loading macros: %w", err)
			}
			logger.Debug("macros loaded", "dir", cfg.MacrosDir, "count", len(names))

			cmd.SetContext(commands.WithEnv(cmd.Context(), &commands.Env{
				Config:   cfg,
				Logger:   logger,
				Registry: reg,
			}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./fluent.yaml)")
	rootCmd.PersistentFlags().String("separator", ".", "Path separator")
	rootCmd.PersistentFlags().Bool("strict", false, "Fail on malformed paths instead of treating them as missing")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every executed step to stderr")
	rootCmd.PersistentFlags().String("macros-dir", config.DefaultMacrosDir, "Directory of Starlark (*.star) operations")
	rootCmd.PersistentFlags().StringP("output", "o", config.DefaultOutput, "Output format (json|yaml|table|dot)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.Outputs, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewEvalCommand())
	rootCmd.AddCommand(commands.NewOpsCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
