package engine

// run.go - review orchestration: discovery, extraction, rule evaluation,
// and report assembly.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Chatelo/freview/internal/discover"
	"github.com/Chatelo/freview/pkg/pyast"
	"github.com/Chatelo/freview/pkg/review"
	"github.com/Chatelo/freview/pkg/review/extract"
	"github.com/Chatelo/freview/pkg/review/project"
	"github.com/Chatelo/freview/pkg/review/rules/database"
	"github.com/Chatelo/freview/pkg/review/rules/models"
	"github.com/Chatelo/freview/pkg/review/rules/routes"
)

// Run reviews the project rooted at root.
func (e *Engine) Run(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path is not a directory: %s", root)
	}

	res := &Result{
		RunID:     uuid.NewString(),
		Root:      root,
		StartedAt: time.Now(),
		Report:    make(review.Report),
	}
	e.logger.Info("starting review", "run_id", res.RunID, "root", root)

	res.Report.Add(review.KeyProject, discover.Structure(root)...)

	e.reviewRoutes(ctx, root, res)
	e.reviewModels(ctx, root, res)

	crossFindings := project.Evaluate(&project.Context{
		Routes:     res.Routes,
		Blueprints: res.Blueprints,
		Models:     res.Models,
		Options:    e.opts,
	})
	for _, f := range crossFindings {
		res.Report.Add(f.File, f)
	}

	e.reviewMigrations(root, res)
	e.reviewConfig(ctx, root, res)
	e.reviewUsage(ctx, root, res)
	e.reviewQueryPatterns(root, res)

	e.capFindings(res.Report)

	res.Duration = time.Since(res.StartedAt)
	e.logger.Info("review complete",
		"run_id", res.RunID,
		"findings", res.Report.Total(),
		"routes", len(res.Routes),
		"models", len(res.Models),
		"duration", res.Duration)
	return res, nil
}

// reviewRoutes extracts and evaluates every candidate route file.
func (e *Engine) reviewRoutes(ctx context.Context, root string, res *Result) {
	files, err := discover.RouteFiles(root)
	if err != nil {
		e.logger.Warn("route discovery failed", "error", err)
	}
	if len(files) == 0 {
		res.Report.Add(review.KeyAPIAnalysis,
			review.Finding{RuleID: "AP00", Severity: review.SeverityWarning,
				Message: "No Flask route files found", File: review.KeyAPIAnalysis},
			review.Finding{RuleID: "AP00", Severity: review.SeverityHint,
				Message: "Recommendation: Create route files with @app.route or Blueprint definitions", File: review.KeyAPIAnalysis},
		)
		return
	}

	for _, path := range files {
		key := relPath(root, path)
		tree, ferr := e.parseFile(ctx, path)
		if ferr != nil {
			ferr.File = key
			res.Report.Add(key, *ferr)
			continue
		}
		extracted := extract.Routes(tree, key)
		res.Routes = append(res.Routes, extracted.Routes...)
		res.Blueprints = append(res.Blueprints, extracted.Blueprints...)

		findings := routes.Evaluate(&routes.Context{
			File:       key,
			Routes:     extracted.Routes,
			Blueprints: extracted.Blueprints,
			Imports:    extracted.Imports,
			Options:    e.opts,
		})
		res.Report.Add(key, findings...)
	}
}

// reviewModels extracts and evaluates every candidate model file.
func (e *Engine) reviewModels(ctx context.Context, root string, res *Result) {
	files, err := discover.ModelFiles(root)
	if err != nil {
		e.logger.Warn("model discovery failed", "error", err)
	}
	if len(files) == 0 {
		res.Report.Add(review.KeyProject, review.Finding{
			RuleID:   "MD00",
			Severity: review.SeverityWarning,
			Message:  "No Python model files found in the project",
			File:     review.KeyProject,
		})
		return
	}

	for _, path := range files {
		key := relPath(root, path)
		tree, ferr := e.parseFile(ctx, path)
		if ferr != nil {
			ferr.File = key
			res.Report.Add(key, *ferr)
			continue
		}
		extracted := extract.Models(tree, key)
		res.Models = append(res.Models, extracted.Models...)

		if len(extracted.Models) == 0 {
			res.Report.Add(key, review.Finding{
				RuleID:   "MD00",
				Severity: review.SeverityInfo,
				Message:  "No SQLAlchemy models found in this file",
				File:     key,
			})
			continue
		}

		findings := models.Evaluate(&models.Context{
			File:    key,
			Models:  extracted.Models,
			Imports: extracted.Imports,
			Options: e.opts,
		})
		res.Report.Add(key, findings...)
	}
}

// reviewMigrations checks the Alembic layout and each migration script.
func (e *Engine) reviewMigrations(root string, res *Result) {
	add := func(sev review.Severity, msg string) {
		if sev == review.SeveritySuccess && !e.opts.ShowSuccess {
			return
		}
		res.Report.Add(review.KeyMigrations, review.Finding{
			RuleID:   "MG00",
			Severity: sev,
			Message:  msg,
			File:     review.KeyMigrations,
		})
	}

	migrationsDir := discover.MigrationsDir(root)
	if migrationsDir == "" {
		add(review.SeverityWarning, "No migrations directory found")
		add(review.SeverityHint, "Consider setting up Alembic for database migrations")
		add(review.SeverityHint, "Run: flask db init (with Flask-Migrate)")
		return
	}

	scripts, err := discover.MigrationScripts(migrationsDir)
	if err != nil {
		add(review.SeverityWarning, "No migrations/versions directory found")
	} else if len(scripts) == 0 {
		add(review.SeverityWarning, "No migration files found")
	} else {
		add(review.SeveritySuccess, fmt.Sprintf("Found %d migration file(s)", len(scripts)))
		for _, script := range scripts {
			content, err := os.ReadFile(script)
			if err != nil {
				add(review.SeverityError, fmt.Sprintf("Error analyzing migration %s: %s", filepath.Base(script), err))
				continue
			}
			record := extract.Migration(content, relPath(root, script))
			res.Migrations = append(res.Migrations, record)

			findings := database.EvaluateMigration(&database.MigrationContext{
				Migration: record,
				Content:   string(content),
				Options:   e.opts,
			})
			res.Report.Add(review.KeyMigrations, findings...)
		}
	}

	if fileExists(filepath.Join(root, "alembic.ini")) {
		add(review.SeveritySuccess, "Alembic configuration file present")
	} else {
		add(review.SeverityWarning, "No alembic.ini configuration file found")
	}
	if fileExists(filepath.Join(migrationsDir, "env.py")) {
		add(review.SeveritySuccess, "Migration environment file present")
	} else {
		add(review.SeverityWarning, "No env.py file found in migrations directory")
	}
}

// reviewConfig evaluates each conventional configuration file. Non-Python
// files (.env) are reviewed on raw text only.
func (e *Engine) reviewConfig(ctx context.Context, root string, res *Result) {
	files := discover.ConfigFiles(root)
	if len(files) == 0 {
		res.Report.Add(review.KeyDatabaseConfig,
			review.Finding{RuleID: "CF00", Severity: review.SeverityWarning,
				Message: "No database configuration found", File: review.KeyDatabaseConfig},
			review.Finding{RuleID: "CF00", Severity: review.SeverityHint,
				Message: "Create a config.py file with DATABASE_URI", File: review.KeyDatabaseConfig},
			review.Finding{RuleID: "CF00", Severity: review.SeverityHint,
				Message: "Consider using environment variables for sensitive data", File: review.KeyDatabaseConfig},
		)
		return
	}

	for _, path := range files {
		key := relPath(root, path)
		content, err := os.ReadFile(path)
		if err != nil {
			res.Report.Add(key, review.Finding{
				RuleID:   "CF00",
				Severity: review.SeverityError,
				Message:  fmt.Sprintf("Error analyzing config file: %s", err),
				File:     key,
			})
			continue
		}

		cctx := &database.ConfigContext{
			File:    key,
			Content: string(content),
			Options: e.opts,
		}
		if strings.HasSuffix(path, ".py") {
			if tree, err := pyast.Parse(ctx, content); err == nil {
				cctx.Signals = extract.Usage(tree, key).Usage.Signals
			}
		}
		res.Report.Add(key, database.EvaluateConfig(cctx)...)
	}
}

// dbPatterns mark a Python file as database-using.
var dbPatterns = []string{
	"from flask_sqlalchemy",
	"import sqlalchemy",
	"db.session",
	"query(",
	".filter(",
	".commit()",
	".rollback()",
}

// reviewUsage evaluates database usage in every Python file that touches the
// database, then adds the project-wide usage summary.
func (e *Engine) reviewUsage(ctx context.Context, root string, res *Result) {
	files, err := discover.PythonFiles(root)
	if err != nil {
		e.logger.Warn("usage discovery failed", "error", err)
		return
	}

	var usageFiles []string
	var allContent strings.Builder
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		text := string(content)
		if !containsAny(text, dbPatterns) {
			continue
		}
		usageFiles = append(usageFiles, path)
		allContent.WriteString(text)

		key := relPath(root, path)
		tree, perr := pyast.Parse(ctx, content)
		if perr != nil {
			res.Report.Add(key, review.Finding{
				RuleID:   "DB00",
				Severity: review.SeverityError,
				Message:  fmt.Sprintf("Error analyzing database usage: %s", perr),
				File:     key,
			})
			continue
		}
		extracted := extract.Usage(tree, key)
		findings := database.EvaluateUsage(&database.UsageContext{
			Usage:   extracted.Usage,
			Content: text,
			Imports: extracted.Imports,
			Options: e.opts,
		})
		res.Report.Add(key, findings...)
	}

	if len(usageFiles) == 0 {
		return
	}

	add := func(sev review.Severity, msg string) {
		if sev == review.SeveritySuccess && !e.opts.ShowSuccess {
			return
		}
		res.Report.Add(review.KeyDatabaseUsage, review.Finding{
			RuleID:   "DB00",
			Severity: sev,
			Message:  msg,
			File:     review.KeyDatabaseUsage,
		})
	}
	combined := allContent.String()
	add(review.SeveritySuccess, fmt.Sprintf("Database usage detected in %d file(s)", len(usageFiles)))
	if !strings.Contains(combined, "db.session.close()") {
		add(review.SeverityHint, "Consider explicit session management with db.session.close()")
	}
	if strings.Contains(combined, "bulk_insert") || strings.Contains(combined, "bulk_update") {
		add(review.SeveritySuccess, "Bulk operations detected - good for performance")
	}
	if strings.Contains(combined, "lazy=") {
		add(review.SeveritySuccess, "Lazy loading configuration detected")
	}
}

// queryOptimizationTips are emitted whenever the project defines ORM
// relationships at all.
var queryOptimizationTips = []string{
	"Query Optimization Tips:",
	"   • Use database indexes on frequently queried columns",
	"   • Consider query.options(selectinload()) for relationships",
	"   • Use pagination for large result sets",
	"   • Monitor slow query logs in production",
	"   • Consider database connection pooling",
}

// reviewQueryPatterns counts relationship declarations across model files and
// emits optimization guidance.
func (e *Engine) reviewQueryPatterns(root string, res *Result) {
	files, err := discover.ModelFiles(root)
	if err != nil || len(files) == 0 {
		return
	}

	relationships := 0
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		relationships += strings.Count(string(content), "relationship(")
	}

	add := func(sev review.Severity, msg string) {
		if sev == review.SeveritySuccess && !e.opts.ShowSuccess {
			return
		}
		res.Report.Add(review.KeyQueryPatterns, review.Finding{
			RuleID:   "QP00",
			Severity: sev,
			Message:  msg,
			File:     review.KeyQueryPatterns,
		})
	}
	if relationships > 0 {
		add(review.SeveritySuccess, fmt.Sprintf("Found %d model relationship(s)", relationships))
		add(review.SeverityHint, "Consider eager loading for frequently accessed relationships")
		add(review.SeverityHint, "Use lazy='select' or lazy='joined' appropriately")
	}
	for _, tip := range queryOptimizationTips {
		add(review.SeverityHint, tip)
	}
}

// parseFile reads and parses one Python file, converting failures to the
// finding that stands in for the file's analysis.
func (e *Engine) parseFile(ctx context.Context, path string) (*pyast.Tree, *review.Finding) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &review.Finding{
			RuleID:   "IO00",
			Severity: review.SeverityError,
			Message:  fmt.Sprintf("Error analyzing file: %s", err),
		}
	}
	tree, err := pyast.Parse(ctx, content)
	if err != nil {
		var serr *pyast.SyntaxError
		if errors.As(err, &serr) {
			return nil, &review.Finding{
				RuleID:   "IO00",
				Severity: review.SeverityError,
				Message:  fmt.Sprintf("Syntax error: %s at line %d", serr.Msg, serr.Line),
				Line:     serr.Line,
			}
		}
		return nil, &review.Finding{
			RuleID:   "IO00",
			Severity: review.SeverityError,
			Message:  fmt.Sprintf("Error analyzing file: %s", err),
		}
	}
	return tree, nil
}

// capFindings truncates each report key to the configured per-file limit.
func (e *Engine) capFindings(report review.Report) {
	if e.opts.MaxFindingsPerFile <= 0 {
		return
	}
	for key, findings := range report {
		if len(findings) > e.opts.MaxFindingsPerFile {
			report[key] = findings[:e.opts.MaxFindingsPerFile]
		}
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
