package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Chatelo/freview/internal/engine"
	"github.com/Chatelo/freview/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-run the review on file changes",
		Long: `Watch a Flask project and re-run the review whenever a Python
file, configuration file, or migration changes. Stop with Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}

			cfg := GetConfig(cmd.Context())
			r := GetRenderer(cmd.Context())
			logger := GetLogger(cmd.Context())

			eng := engine.New(engine.Config{
				Options: cfg.ToOptions(),
				Logger:  logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := watch.New(abs, logger, func(ctx context.Context) {
				res, err := eng.Run(ctx, abs)
				if err != nil {
					r.Error(err.Error())
					return
				}
				renderText(r, res)
			})

			r.Printf("👀 Watching %s (Ctrl+C to stop)\n\n", abs)
			return w.Watch(ctx)
		},
	}
}
