// Package project holds the cross-file rules: API architecture checks over
// the full route population and relationship checks over the full model
// population. Rules here see every extracted record at once and must not
// mutate them; running a rule twice over the same context yields the same
// findings.
package project

import (
	"sync"

	"github.com/Chatelo/freview/pkg/review"
)

// Context provides the whole project's extracted entities to the rules.
type Context struct {
	Routes     []review.RouteRecord
	Blueprints []review.BlueprintRecord
	Models     []review.ModelRecord
	Options    *review.Options
}

// Check is the function signature for project rule checks. Checks attribute
// findings to files themselves since there is no single subject file.
type Check func(ctx *Context) []review.Finding

// RuleDef is a project rule definition.
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

// Evaluate runs every registered project rule against the context.
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
			f.Severity = opts.Escalate(f.Severity)
			findings = append(findings, f)
		}
	}
	return findings
}
