package routes

import (
	"fmt"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "RT06",
		Name:        "route-authentication",
		Group:       "routes",
		Description: "Sensitive route lacks authentication",
		Severity:    review.SeverityWarning,
		Check:       checkAuthentication,
	})
}

func checkAuthentication(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, route := range ctx.Routes {
		if !route.IsSensitive() || route.HasAuth {
			continue
		}
		findings = append(findings, review.Finding{
			Severity: review.SeverityWarning,
			Message:  fmt.Sprintf("Route '%s' may need authentication", route.Name),
			Line:     route.Line,
		})
	}
	return findings
}
