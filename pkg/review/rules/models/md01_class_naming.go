package models

import (
	"fmt"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "MD01",
		Name:        "class-naming",
		Group:       "models",
		Description: "Model class name does not follow the naming convention",
		Severity:    review.SeverityWarning,
		Check:       checkClassNaming,
	})
}

func checkClassNaming(ctx *Context) []review.Finding {
	re := ctx.Options.ClassNameRegexp()
	var findings []review.Finding
	for _, model := range ctx.Models {
		if !re.MatchString(model.Name) {
			findings = append(findings, review.Finding{
				Severity: review.SeverityWarning,
				Message:  fmt.Sprintf("%s: Class name should be PascalCase", model.Name),
				Line:     model.Line,
			})
		}
	}
	return findings
}
