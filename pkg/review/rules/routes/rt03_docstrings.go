package routes

import (
	"fmt"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "RT03",
		Name:        "route-docstrings",
		Group:       "routes",
		Description: "Route handler lacks a docstring",
		Severity:    review.SeverityInfo,
		Check:       checkDocstrings,
	})
}

func checkDocstrings(ctx *Context) []review.Finding {
	sev := review.SeverityInfo
	if ctx.Options.RequireDocstrings {
		sev = review.SeverityWarning
	}

	var findings []review.Finding
	for _, route := range ctx.Routes {
		if !route.HasDocstring {
			findings = append(findings, review.Finding{
				Severity: sev,
				Message:  fmt.Sprintf("Route '%s' missing docstring", route.Name),
				Line:     route.Line,
			})
		}
	}
	return findings
}
