package models

import (
	"fmt"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "MD06",
		Name:        "core-requirements",
		Group:       "models",
		Description: "Model satisfies tablename, column, and primary key requirements",
		Severity:    review.SeveritySuccess,
		Check:       checkCoreRequirements,
	})
	Register(RuleDef{
		ID:          "MD07",
		Name:        "foreign-keys",
		Group:       "models",
		Description: "Model declares foreign key constraints",
		Severity:    review.SeveritySuccess,
		Check:       checkForeignKeys,
	})
	Register(RuleDef{
		ID:          "MD08",
		Name:        "relationships",
		Group:       "models",
		Description: "Model declares ORM relationships",
		Severity:    review.SeveritySuccess,
		Check:       checkRelationships,
	})
}

func checkCoreRequirements(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, model := range ctx.Models {
		if model.HasTablename && model.HasColumns && model.HasPrimaryKey {
			findings = append(findings, review.Finding{
				Severity: review.SeveritySuccess,
				Message:  fmt.Sprintf("%s: Core model requirements satisfied", model.Name),
				Line:     model.Line,
			})
		}
	}
	return findings
}

func checkForeignKeys(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, model := range ctx.Models {
		if n := len(model.ForeignKeys); n > 0 {
			findings = append(findings, review.Finding{
				Severity: review.SeveritySuccess,
				Message:  fmt.Sprintf("%s: Uses foreign key constraints (%d found)", model.Name, n),
				Line:     model.Line,
			})
		}
	}
	return findings
}

func checkRelationships(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, model := range ctx.Models {
		if n := len(model.Relationships); n > 0 {
			findings = append(findings, review.Finding{
				Severity: review.SeveritySuccess,
				Message:  fmt.Sprintf("%s: Defines relationships (%d found)", model.Name, n),
				Line:     model.Line,
			})
		}
	}
	return findings
}
