package routes

import (
	"fmt"
	"path/filepath"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "RT08",
		Name:        "route-summary",
		Group:       "routes",
		Description: "Positive feedback for routes and blueprints found",
		Severity:    review.SeveritySuccess,
		Check:       checkSummary,
	})
}

func checkSummary(ctx *Context) []review.Finding {
	var findings []review.Finding
	name := filepath.Base(ctx.File)
	if len(ctx.Routes) > 0 {
		findings = append(findings, review.Finding{
			Severity: review.SeveritySuccess,
			Message:  fmt.Sprintf("Found %d route(s) in %s", len(ctx.Routes), name),
		})
	}
	if len(ctx.Blueprints) > 0 {
		findings = append(findings, review.Finding{
			Severity: review.SeveritySuccess,
			Message:  fmt.Sprintf("Found %d blueprint(s) in %s", len(ctx.Blueprints), name),
		})
	}
	return findings
}
