// Package report serializes review results to Markdown and JSON for saving
// alongside the project.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Chatelo/freview/internal/engine"
	"github.com/Chatelo/freview/pkg/review"
)

// syntheticSections fixes the render order of the project-level report keys;
// file keys follow, sorted.
var syntheticSections = []struct {
	key   string
	title string
}{
	{review.KeyProject, "Project Structure"},
	{review.KeyAPIAnalysis, "API Analysis"},
	{review.KeyAPIArchitecture, "API Architecture"},
	{review.KeyMigrations, "Migrations"},
	{review.KeyDatabaseConfig, "Database Configuration"},
	{review.KeyDatabaseUsage, "Database Usage"},
	{review.KeyQueryPatterns, "Query Optimization"},
}

// FileKeys returns the report's non-synthetic keys in sorted order.
func FileKeys(r review.Report) []string {
	synthetic := make(map[string]bool, len(syntheticSections))
	for _, s := range syntheticSections {
		synthetic[s.key] = true
	}
	var keys []string
	for key := range r {
		if !synthetic[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// WriteMarkdown renders the result as a Markdown report.
func WriteMarkdown(w io.Writer, res *engine.Result) error {
	var b strings.Builder
	b.WriteString("# Flask Project Review Report\n\n")

	b.WriteString("## Project Structure\n\n")
	if structure := res.Report[review.KeyProject]; len(structure) > 0 {
		for _, f := range structure {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	} else {
		b.WriteString("✅ Project structure looks good!\n")
	}

	for _, section := range syntheticSections[1:] {
		findings := res.Report[section.key]
		if len(findings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", section.title)
		for _, f := range findings {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	b.WriteString("\n## File Checks\n")
	for _, key := range FileKeys(res.Report) {
		fmt.Fprintf(&b, "\n### %s\n", key)
		for _, f := range res.Report[key] {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// jsonReport is the JSON serialization shape.
type jsonReport struct {
	RunID       string                      `json:"run_id"`
	Root        string                      `json:"root"`
	GeneratedAt time.Time                   `json:"generated_at"`
	DurationMS  int64                       `json:"duration_ms"`
	Summary     jsonSummary                 `json:"summary"`
	Findings    map[string][]review.Finding `json:"findings"`
}

type jsonSummary struct {
	Total      int `json:"total"`
	Errors     int `json:"errors"`
	Warnings   int `json:"warnings"`
	Routes     int `json:"routes"`
	Blueprints int `json:"blueprints"`
	Models     int `json:"models"`
	Migrations int `json:"migrations"`
}

// WriteJSON renders the result as indented JSON.
func WriteJSON(w io.Writer, res *engine.Result) error {
	out := jsonReport{
		RunID:       res.RunID,
		Root:        res.Root,
		GeneratedAt: res.StartedAt,
		DurationMS:  res.Duration.Milliseconds(),
		Summary: jsonSummary{
			Total:      res.Report.Total(),
			Errors:     res.Report.CountBySeverity(review.SeverityError),
			Warnings:   res.Report.CountBySeverity(review.SeverityWarning),
			Routes:     len(res.Routes),
			Blueprints: len(res.Blueprints),
			Models:     len(res.Models),
			Migrations: len(res.Migrations),
		},
		Findings: res.Report,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Save writes the report to path in the given format ("markdown" or "json").
func Save(path, format string, res *engine.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if format == "json" {
		return WriteJSON(f, res)
	}
	return WriteMarkdown(f, res)
}
