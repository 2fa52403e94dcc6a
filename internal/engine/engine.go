// Package engine orchestrates a review run: it discovers the project's
// route, model, migration, and configuration files, extracts structural
// facts from each, evaluates the rule registries over them, and assembles
// the final report.
package engine

import (
	"log/slog"
	"time"

	"github.com/Chatelo/freview/pkg/review"
)

// Engine drives review runs over a project directory.
type Engine struct {
	logger *slog.Logger
	opts   *review.Options
}

// Config holds engine configuration.
type Config struct {
	// Options tunes rule behavior (nil uses defaults).
	Options *review.Options
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts := cfg.Options
	if opts == nil {
		opts = review.DefaultOptions()
	}
	return &Engine{logger: logger, opts: opts}
}

// Result is the outcome of one review run.
type Result struct {
	RunID     string
	Root      string
	StartedAt time.Time
	Duration  time.Duration

	Report review.Report

	Routes     []review.RouteRecord
	Blueprints []review.BlueprintRecord
	Models     []review.ModelRecord
	Migrations []review.MigrationRecord
}
