package models

import (
	"fmt"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "MD04",
		Name:        "column-definitions",
		Group:       "models",
		Description: "Model class defines no db.Column() attributes",
		Severity:    review.SeverityError,
		Check:       checkColumns,
	})
	Register(RuleDef{
		ID:          "MD05",
		Name:        "primary-key",
		Group:       "models",
		Description: "Model class has no primary key column",
		Severity:    review.SeverityError,
		Check:       checkPrimaryKey,
	})
}

func checkColumns(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, model := range ctx.Models {
		if !model.HasColumns {
			findings = append(findings, review.Finding{
				Severity: review.SeverityError,
				Message:  fmt.Sprintf("%s: No columns defined with db.Column()", model.Name),
				Line:     model.Line,
			})
		}
	}
	return findings
}

func checkPrimaryKey(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, model := range ctx.Models {
		if !model.HasPrimaryKey {
			findings = append(findings, review.Finding{
				Severity: review.SeverityError,
				Message:  fmt.Sprintf("%s: No primary key defined", model.Name),
				Line:     model.Line,
			})
		}
	}
	return findings
}
