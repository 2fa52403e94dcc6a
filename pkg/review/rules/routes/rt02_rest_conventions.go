package routes

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "RT02",
		Name:        "rest-conventions",
		Group:       "routes",
		Description: "Route path/method combination deviates from REST shapes",
		Severity:    review.SeverityHint,
		Check:       checkRESTConventions,
	})
}

// restShapes pairs an API path shape with the method set expected on it.
// Paths that match none of the shapes are considered non-API routes and pass
// by default.
var restShapes = []struct {
	pattern *regexp.Regexp
	methods []string
}{
	{regexp.MustCompile(`^/api/\w+/?$`), []string{"GET", "POST"}},                // collection
	{regexp.MustCompile(`^/api/\w+/\d+/?$`), []string{"GET", "PUT", "DELETE"}},   // resource
	{regexp.MustCompile(`^/api/\w+/<\w+>/?$`), []string{"GET", "PUT", "DELETE"}}, // resource with variable
}

func checkRESTConventions(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, route := range ctx.Routes {
		if !followsRESTConventions(route) {
			findings = append(findings, review.Finding{
				Severity: review.SeverityHint,
				Message:  fmt.Sprintf("Route '%s' could follow REST conventions better", route.Path),
				Line:     route.Line,
			})
		}
	}
	return findings
}

func followsRESTConventions(route review.RouteRecord) bool {
	path := strings.ToLower(route.Path)
	for _, shape := range restShapes {
		if !shape.pattern.MatchString(path) {
			continue
		}
		for _, expected := range shape.methods {
			if route.HasMethod(expected) {
				return true
			}
		}
		return false
	}
	return true
}
