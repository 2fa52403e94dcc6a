package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Chatelo/freview/internal/cli/output"
	"github.com/Chatelo/freview/internal/engine"
	"github.com/Chatelo/freview/internal/report"
	"github.com/Chatelo/freview/pkg/review"
)

// ReviewOptions holds options for the review command.
type ReviewOptions struct {
	Save       bool   // Save a report file
	ReportFile string // Report file path override
	Format     string // Output format override
}

// NewReviewCommand creates the review command.
func NewReviewCommand() *cobra.Command {
	opts := &ReviewOptions{}
	cmd := &cobra.Command{
		Use:   "review [path]",
		Short: "Review a Flask project",
		Long: `Review a Flask project's structure, routes, SQLAlchemy models,
migrations, and database configuration.`,
		Example: `  # Review the current directory
  freview review

  # Review a project and save a Markdown report
  freview review ./myapp --save

  # Machine-readable output
  freview review ./myapp -o json`,
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
			if opts.Format != "" {
				r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
			}

			eng := engine.New(engine.Config{
				Options: cfg.ToOptions(),
				Logger:  GetLogger(cmd.Context()),
			})
			res, err := eng.Run(cmd.Context(), abs)
			if err != nil {
				return err
			}

			switch r.EffectiveMode() {
			case output.ModeJSON:
				if err := report.WriteJSON(r.Out(), res); err != nil {
					return err
				}
			case output.ModeMarkdown:
				if err := report.WriteMarkdown(r.Out(), res); err != nil {
					return err
				}
			default:
				renderText(r, res)
			}

			if opts.Save {
				reportFile := cfg.ReportFile
				if opts.ReportFile != "" {
					reportFile = opts.ReportFile
				}
				if err := report.Save(reportFile, "markdown", res); err != nil {
					return err
				}
				r.Printf("\n📝 Saved Markdown report: %s\n", reportFile)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Save, "save", false, "Save a Markdown report")
	cmd.Flags().StringVar(&opts.ReportFile, "report-file", "", "Report file path")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// textSections orders the project-level sections in terminal output.
var textSections = []struct {
	key   string
	title string
}{
	{review.KeyAPIAnalysis, "🛣️  API Analysis:"},
	{review.KeyAPIArchitecture, "🏛️  API Architecture:"},
	{review.KeyMigrations, "🗄️  Migrations:"},
	{review.KeyDatabaseConfig, "⚙️  Database Configuration:"},
	{review.KeyDatabaseUsage, "🗃️  Database Usage:"},
	{review.KeyQueryPatterns, "🚀 Query Optimization:"},
}

// renderText writes the terminal report.
func renderText(r *output.Renderer, res *engine.Result) {
	r.Printf("🔍 Reviewing %s\n\n", output.PathStyle.Render(res.Root))

	r.Println("📁 Structure Checks:")
	if structure := res.Report[review.KeyProject]; len(structure) > 0 {
		for _, f := range structure {
			r.Finding(f)
		}
	} else {
		r.Println(output.SuccessStyle.Render("✅ Structure looks good"))
	}

	fileKeys := report.FileKeys(res.Report)
	if len(fileKeys) > 0 {
		r.Println("\n🧠 File Checks:")
		for _, key := range fileKeys {
			r.Printf("\n📄 %s\n", output.PathStyle.Render(key))
			for _, f := range res.Report[key] {
				r.Finding(f)
			}
		}
	}

	for _, section := range textSections {
		findings := res.Report[section.key]
		if len(findings) == 0 {
			continue
		}
		r.Printf("\n%s\n", section.title)
		for _, f := range findings {
			r.Finding(f)
		}
	}

	r.Printf("\n%s\n", output.MutedStyle.Render(fmt.Sprintf(
		"%d finding(s) across %d route(s), %d model(s), %d migration(s)",
		res.Report.Total(), len(res.Routes), len(res.Models), len(res.Migrations))))
}
