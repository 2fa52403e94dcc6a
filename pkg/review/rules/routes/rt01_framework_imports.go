package routes

import "github.com/Chatelo/freview/pkg/review"

func init() {
	Register(RuleDef{
		ID:          "RT01",
		Name:        "framework-imports",
		Group:       "routes",
		Description: "Route declarations present without any Flask import",
		Severity:    review.SeverityWarning,
		Check:       checkFrameworkImports,
	})
}

func checkFrameworkImports(ctx *Context) []review.Finding {
	if len(ctx.Routes) == 0 || ctx.Imports.ContainsSubstring("flask") {
		return nil
	}
	return []review.Finding{{
		Severity: review.SeverityWarning,
		Message:  "Routes found but no Flask imports detected",
	}}
}
