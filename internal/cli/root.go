// Package cli provides the command-line interface for freview.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Chatelo/freview/internal/cli/commands"
	"github.com/Chatelo/freview/internal/cli/output"
	"github.com/Chatelo/freview/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "freview",
		Short: "freview - Flask project reviewer",
		Long: `freview inspects Flask projects for structural issues: route and
blueprint conventions, SQLAlchemy model requirements, Alembic migrations,
and database configuration.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
			logger := newLogger(verbose)

			cfg, err := config.Load(cfgFile, ".", cmd.Root().PersistentFlags(), logger)
			if err != nil {
				return err
			}

			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))

			ctx := commands.WithConfig(cmd.Context(), cfg)
			ctx = commands.WithRenderer(ctx, renderer)
			ctx = commands.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if path := config.ConfigFileUsed(); path != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", path)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Flask project reviewer built with Go
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.freview.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (text|markdown|json)")
	rootCmd.PersistentFlags().Bool("show-success", true, "Include success findings")
	rootCmd.PersistentFlags().StringSlice("skip", nil, "Rule IDs to skip")
	rootCmd.PersistentFlags().Bool("strict", false, "Treat warnings as errors")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewReviewCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())

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

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
