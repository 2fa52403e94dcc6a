// Package database holds the migration, configuration, and usage rules. The
// three rule kinds share one registry so the rules command can list them
// together; each kind gets its own context and evaluate entry point.
package database

import (
	"path/filepath"
	"sync"

	"github.com/Chatelo/freview/pkg/review"
)

// Kind distinguishes which context a rule runs against.
type Kind int

const (
	KindMigration Kind = iota
	KindConfig
	KindUsage
)

// MigrationContext provides one migration script to the migration rules.
type MigrationContext struct {
	Migration review.MigrationRecord
	Content   string
	Options   *review.Options
}

// ScriptName is the identifier migration findings refer to the script by:
// the file name including its extension.
func (ctx *MigrationContext) ScriptName() string {
	return filepath.Base(ctx.Migration.File)
}

// ConfigContext provides one configuration file to the config rules.
type ConfigContext struct {
	File    string
	Content string
	Signals []review.ConfigSignal
	Options *review.Options
}

// UsageContext provides one application file's database usage to the rules.
type UsageContext struct {
	Usage   review.UsageRecord
	Content string
	Imports review.ImportSet
	Options *review.Options
}

// RuleDef is a database rule definition. Exactly one of the check fields is
// set, matching Kind.
type RuleDef struct {
	ID          string
	Name        string
	Group       string
	Description string
	Severity    review.Severity
	Kind        Kind

	CheckMigration func(ctx *MigrationContext) []review.Finding
	CheckConfig    func(ctx *ConfigContext) []review.Finding
	CheckUsage     func(ctx *UsageContext) []review.Finding
}

var registry = struct {
	mu    sync.RWMutex
	order []RuleDef
	byID  map[string]RuleDef
}{byID: make(map[string]RuleDef)}

// Register adds a rule to the registry. Call from init() in rule files.
func Register(rule RuleDef) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, dup := registry.byID[rule.ID]; !dup {
		registry.order = append(registry.order, rule)
	}
	registry.byID[rule.ID] = rule
}

// All returns the registered rules in registration order.
func All() []RuleDef {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	out := make([]RuleDef, len(registry.order))
	copy(out, registry.order)
	return out
}

// ByID returns a rule by its ID.
func ByID(id string) (RuleDef, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	rule, ok := registry.byID[id]
	return rule, ok
}

func finish(opts *review.Options, rule RuleDef, file string, raw []review.Finding, out []review.Finding) []review.Finding {
	for _, f := range raw {
		if f.Severity == review.SeveritySuccess && !opts.ShowSuccess {
			continue
		}
		if f.RuleID == "" {
			f.RuleID = rule.ID
		}
		if f.File == "" {
			f.File = file
		}
		f.Severity = opts.Escalate(f.Severity)
		out = append(out, f)
	}
	return out
}

// EvaluateMigration runs the migration rules against one migration script.
func EvaluateMigration(ctx *MigrationContext) []review.Finding {
	if ctx.Options == nil {
		ctx.Options = review.DefaultOptions()
	}
	var findings []review.Finding
	for _, rule := range All() {
		if rule.Kind != KindMigration || ctx.Options.Skipped(rule.ID) {
			continue
		}
		findings = finish(ctx.Options, rule, ctx.Migration.File, rule.CheckMigration(ctx), findings)
	}
	return findings
}

// EvaluateConfig runs the configuration rules against one config file.
func EvaluateConfig(ctx *ConfigContext) []review.Finding {
	if ctx.Options == nil {
		ctx.Options = review.DefaultOptions()
	}
	var findings []review.Finding
	for _, rule := range All() {
		if rule.Kind != KindConfig || ctx.Options.Skipped(rule.ID) {
			continue
		}
		findings = finish(ctx.Options, rule, ctx.File, rule.CheckConfig(ctx), findings)
	}
	return findings
}

// EvaluateUsage runs the usage rules against one application file.
func EvaluateUsage(ctx *UsageContext) []review.Finding {
	if ctx.Options == nil {
		ctx.Options = review.DefaultOptions()
	}
	var findings []review.Finding
	for _, rule := range All() {
		if rule.Kind != KindUsage || ctx.Options.Skipped(rule.ID) {
			continue
		}
		findings = finish(ctx.Options, rule, ctx.Usage.File, rule.CheckUsage(ctx), findings)
	}
	return findings
}
