package project

import (
	"fmt"
	"sort"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "RL01",
		Name:        "unused-models",
		Group:       "relationships",
		Description: "Model is never referenced by a relationship",
		Severity:    review.SeverityWarning,
		Check:       checkUnusedModels,
	})
	Register(RuleDef{
		ID:          "RL02",
		Name:        "unknown-targets",
		Group:       "relationships",
		Description: "Relationship targets a model outside the analyzed set",
		Severity:    review.SeverityWarning,
		Check:       checkUnknownTargets,
	})
	Register(RuleDef{
		ID:          "RL03",
		Name:        "circular-relationships",
		Group:       "relationships",
		Description: "Two models reference each other",
		Severity:    review.SeverityWarning,
		Check:       checkCircularRelationships,
	})
}

func modelNames(models []review.ModelRecord) map[string]bool {
	names := make(map[string]bool, len(models))
	for _, m := range models {
		names[m.Name] = true
	}
	return names
}

// checkUnusedModels attributes its findings to the first model's file since
// the absent reference has no location of its own.
func checkUnusedModels(ctx *Context) []review.Finding {
	if len(ctx.Models) == 0 {
		return nil
	}
	referenced := make(map[string]bool)
	for _, m := range ctx.Models {
		for _, rel := range m.Relationships {
			referenced[rel] = true
		}
	}
	var unused []string
	for name := range modelNames(ctx.Models) {
		if !referenced[name] {
			unused = append(unused, name)
		}
	}
	sort.Strings(unused)

	firstFile := ctx.Models[0].File
	var findings []review.Finding
	for _, name := range unused {
		findings = append(findings, review.Finding{
			Severity: review.SeverityWarning,
			Message:  fmt.Sprintf("Model '%s' is not referenced in any relationships", name),
			File:     firstFile,
		})
	}
	return findings
}

func checkUnknownTargets(ctx *Context) []review.Finding {
	names := modelNames(ctx.Models)
	var findings []review.Finding
	for _, m := range ctx.Models {
		for _, rel := range m.Relationships {
			if !names[rel] {
				findings = append(findings, review.Finding{
					Severity: review.SeverityWarning,
					Message:  fmt.Sprintf("%s: Relationship target '%s' not found in analyzed models", m.Name, rel),
					File:     m.File,
					Line:     m.Line,
				})
			}
		}
	}
	return findings
}

// checkCircularRelationships reports each mutual pair once, attributed to
// whichever model of the pair appears first in the population.
func checkCircularRelationships(ctx *Context) []review.Finding {
	deps := make(map[string]map[string]bool, len(ctx.Models))
	for _, m := range ctx.Models {
		targets := make(map[string]bool, len(m.Relationships))
		for _, rel := range m.Relationships {
			targets[rel] = true
		}
		deps[m.Name] = targets
	}

	seen := make(map[string]bool)
	var findings []review.Finding
	for _, m := range ctx.Models {
		for _, rel := range m.Relationships {
			back, ok := deps[rel]
			if !ok || !back[m.Name] {
				continue
			}
			key := pairKey(m.Name, rel)
			if seen[key] {
				continue
			}
			seen[key] = true
			findings = append(findings, review.Finding{
				Severity: review.SeverityWarning,
				Message:  fmt.Sprintf("Potential circular relationship between '%s' and '%s'", m.Name, rel),
				File:     m.File,
				Line:     m.Line,
			})
		}
	}
	return findings
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}
