package routes

import (
	"fmt"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "RT05",
		Name:        "input-validation",
		Group:       "routes",
		Description: "Data-modifying route lacks input validation",
		Severity:    review.SeverityWarning,
		Check:       checkInputValidation,
	})
}

var dataMethods = []string{"POST", "PUT", "PATCH"}

func checkInputValidation(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, route := range ctx.Routes {
		if route.HasValidation || !hasAnyMethod(route, dataMethods) {
			continue
		}
		findings = append(findings, review.Finding{
			Severity: review.SeverityWarning,
			Message:  fmt.Sprintf("Route '%s' should validate input data", route.Name),
			Line:     route.Line,
		})
	}
	return findings
}

func hasAnyMethod(route review.RouteRecord, methods []string) bool {
	for _, m := range methods {
		if route.HasMethod(m) {
			return true
		}
	}
	return false
}
