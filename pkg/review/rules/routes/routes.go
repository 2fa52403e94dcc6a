// Package routes holds the per-file route rules. Rules are registered from
// init() in their own files; registration order (file order) fixes the order
// findings are emitted in, so evaluation is deterministic.
package routes

import (
	"sync"

	"github.com/Chatelo/freview/pkg/review"
)

// Context provides one file's extracted route entities to the rules.
type Context struct {
	File       string
	Routes     []review.RouteRecord
	Blueprints []review.BlueprintRecord
	Imports    review.ImportSet
	Options    *review.Options
}

// Check is the function signature for route rule checks.
type Check func(ctx *Context) []review.Finding

// RuleDef is a route rule definition.
type RuleDef struct {
	ID          string
	Name        string
	Group       string
	Description string
	Severity    review.Severity
	Check       Check
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

// Evaluate runs every registered rule against the context. There is no
// short-circuiting: every applicable rule runs and may append findings.
func Evaluate(ctx *Context) []review.Finding {
	opts := ctx.Options
	if opts == nil {
		opts = review.DefaultOptions()
		ctx.Options = opts
	}

	var findings []review.Finding
	for _, rule := range All() {
		if opts.Skipped(rule.ID) {
			continue
		}
		for _, f := range rule.Check(ctx) {
			if f.Severity == review.SeveritySuccess && !opts.ShowSuccess {
				continue
			}
			if f.RuleID == "" {
				f.RuleID = rule.ID
			}
			if f.File == "" {
				f.File = ctx.File
			}
			f.Severity = opts.Escalate(f.Severity)
			findings = append(findings, f)
		}
	}
	return findings
}
