package project

import (
	"fmt"
	"regexp"

	"github.com/Chatelo/freview/pkg/review"
)

var versionedPathRe = regexp.MustCompile(`/v\d+/`)

// Thresholds below mirror common Flask project guidance: versioning matters
// once an API has more than a handful of routes, blueprints matter once it
// has more than ten.
const (
	versioningRouteFloor = 5
	blueprintRouteFloor  = 10
	errorHandlingRatio   = 0.5
	blueprintRatio       = 0.7
	sensitiveAuthRatio   = 0.8
	getDominanceRatio    = 0.8
)

func init() {
	Register(RuleDef{
		ID:          "AR01",
		Name:        "api-versioning",
		Group:       "architecture",
		Description: "Large APIs should version their routes",
		Severity:    review.SeverityHint,
		Check:       checkVersioning,
	})
	Register(RuleDef{
		ID:          "AR02",
		Name:        "error-handling-coverage",
		Group:       "architecture",
		Description: "Most routes should include error handling",
		Severity:    review.SeverityWarning,
		Check:       checkErrorCoverage,
	})
	Register(RuleDef{
		ID:          "AR03",
		Name:        "blueprint-adoption",
		Group:       "architecture",
		Description: "Large route populations should live in blueprints",
		Severity:    review.SeverityHint,
		Check:       checkBlueprintAdoption,
	})
	Register(RuleDef{
		ID:          "AR04",
		Name:        "sensitive-auth-coverage",
		Group:       "architecture",
		Description: "Sensitive routes should carry authentication",
		Severity:    review.SeverityWarning,
		Check:       checkAuthCoverage,
	})
	Register(RuleDef{
		ID:          "AR05",
		Name:        "method-distribution",
		Group:       "architecture",
		Description: "APIs should use more than GET",
		Severity:    review.SeverityHint,
		Check:       checkMethodDistribution,
	})
}

func versionedRoutes(routes []review.RouteRecord) int {
	n := 0
	for _, r := range routes {
		if versionedPathRe.MatchString(r.Path) {
			n++
		}
	}
	return n
}

func checkVersioning(ctx *Context) []review.Finding {
	if len(ctx.Routes) == 0 {
		return nil
	}
	if versionedRoutes(ctx.Routes) == 0 && len(ctx.Routes) > versioningRouteFloor {
		return []review.Finding{{
			Severity: review.SeverityHint,
			Message:  "Consider API versioning (e.g., /api/v1/)",
			File:     review.KeyAPIArchitecture,
		}}
	}
	return nil
}

func checkErrorCoverage(ctx *Context) []review.Finding {
	if len(ctx.Routes) == 0 {
		return nil
	}
	handled := 0
	for _, r := range ctx.Routes {
		if r.HasErrorCheck {
			handled++
		}
	}
	if float64(handled) < float64(len(ctx.Routes))*errorHandlingRatio {
		return []review.Finding{{
			Severity: review.SeverityWarning,
			Message:  "Less than 50% of routes have error handling",
			File:     review.KeyAPIArchitecture,
		}}
	}
	return nil
}

func checkBlueprintAdoption(ctx *Context) []review.Finding {
	if len(ctx.Routes) == 0 {
		return nil
	}
	inBlueprint := 0
	for _, r := range ctx.Routes {
		if r.Blueprint != "" {
			inBlueprint++
		}
	}
	if float64(inBlueprint) < float64(len(ctx.Routes))*blueprintRatio && len(ctx.Routes) > blueprintRouteFloor {
		return []review.Finding{{
			Severity: review.SeverityHint,
			Message:  "Consider organizing routes into blueprints",
			File:     review.KeyAPIArchitecture,
		}}
	}
	return nil
}

func checkAuthCoverage(ctx *Context) []review.Finding {
	if len(ctx.Routes) == 0 {
		return nil
	}
	auth, sensitive := 0, 0
	for _, r := range ctx.Routes {
		if r.HasAuth {
			auth++
		}
		if r.IsSensitive() {
			sensitive++
		}
	}
	if sensitive > 0 && float64(auth) < float64(sensitive)*sensitiveAuthRatio {
		return []review.Finding{{
			Severity: review.SeverityWarning,
			Message:  "Many sensitive routes lack authentication",
			File:     review.KeyAPIArchitecture,
		}}
	}
	return nil
}

func checkMethodDistribution(ctx *Context) []review.Finding {
	if len(ctx.Routes) == 0 {
		return nil
	}
	gets := 0
	for _, r := range ctx.Routes {
		if r.HasMethod("GET") {
			gets++
		}
	}
	if float64(gets) > float64(len(ctx.Routes))*getDominanceRatio {
		return []review.Finding{{
			Severity: review.SeverityHint,
			Message:  "Consider using more HTTP methods (POST, PUT, DELETE)",
			File:     review.KeyAPIArchitecture,
		}}
	}
	return nil
}

func init() {
	Register(RuleDef{
		ID:          "AR06",
		Name:        "blueprint-usage",
		Group:       "architecture",
		Description: "Project organizes routes with blueprints",
		Severity:    review.SeveritySuccess,
		Check: func(ctx *Context) []review.Finding {
			if len(ctx.Routes) == 0 || len(ctx.Blueprints) == 0 {
				return nil
			}
			return []review.Finding{{
				Severity: review.SeveritySuccess,
				Message:  fmt.Sprintf("Good: Project uses %d blueprint(s)", len(ctx.Blueprints)),
				File:     review.KeyAPIArchitecture,
			}}
		},
	})
	Register(RuleDef{
		ID:          "AR07",
		Name:        "versioning-present",
		Group:       "architecture",
		Description: "Project versions its API routes",
		Severity:    review.SeveritySuccess,
		Check: func(ctx *Context) []review.Finding {
			if len(ctx.Routes) == 0 || versionedRoutes(ctx.Routes) == 0 {
				return nil
			}
			return []review.Finding{{
				Severity: review.SeveritySuccess,
				Message:  "Good: API versioning detected",
				File:     review.KeyAPIArchitecture,
			}}
		},
	})
	Register(RuleDef{
		ID:          "AR08",
		Name:        "auth-present",
		Group:       "architecture",
		Description: "Project authenticates some routes",
		Severity:    review.SeveritySuccess,
		Check: func(ctx *Context) []review.Finding {
			if len(ctx.Routes) == 0 {
				return nil
			}
			auth := 0
			for _, r := range ctx.Routes {
				if r.HasAuth {
					auth++
				}
			}
			if auth == 0 {
				return nil
			}
			return []review.Finding{{
				Severity: review.SeveritySuccess,
				Message:  fmt.Sprintf("Good: %d route(s) have authentication", auth),
				File:     review.KeyAPIArchitecture,
			}}
		},
	})
}
