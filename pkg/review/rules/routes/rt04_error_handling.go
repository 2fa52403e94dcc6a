package routes

import (
	"fmt"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "RT04",
		Name:        "route-error-handling",
		Group:       "routes",
		Description: "Non-GET route lacks error handling",
		Severity:    review.SeverityWarning,
		Check:       checkErrorHandling,
	})
}

// checkErrorHandling never fires on routes whose method set is exactly {GET}:
// read-only routes are allowed to skip explicit error handling.
func checkErrorHandling(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, route := range ctx.Routes {
		if route.IsGETOnly() || route.HasErrorCheck {
			continue
		}
		findings = append(findings, review.Finding{
			Severity: review.SeverityWarning,
			Message:  fmt.Sprintf("Route '%s' should include error handling", route.Name),
			Line:     route.Line,
		})
	}
	return findings
}
