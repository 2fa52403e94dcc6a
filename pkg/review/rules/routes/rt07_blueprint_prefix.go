package routes

import (
	"fmt"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "RT07",
		Name:        "blueprint-prefix",
		Group:       "routes",
		Description: "Blueprint declared without a url_prefix",
		Severity:    review.SeverityHint,
		Check:       checkBlueprintPrefix,
	})
}

func checkBlueprintPrefix(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, bp := range ctx.Blueprints {
		if bp.URLPrefix == "" {
			findings = append(findings, review.Finding{
				Severity: review.SeverityHint,
				Message:  fmt.Sprintf("Blueprint '%s' should have a url_prefix", bp.Name),
				Line:     bp.Line,
			})
		}
	}
	return findings
}
