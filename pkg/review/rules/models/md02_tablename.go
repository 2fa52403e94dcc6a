package models

import (
	"fmt"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "MD02",
		Name:        "tablename-presence",
		Group:       "models",
		Description: "Model class lacks a __tablename__ attribute",
		Severity:    review.SeverityError,
		Check:       checkTablename,
	})
	Register(RuleDef{
		ID:          "MD03",
		Name:        "tablename-naming",
		Group:       "models",
		Description: "__tablename__ does not follow the naming convention",
		Severity:    review.SeverityWarning,
		Check:       checkTablenameNaming,
	})
}

// checkTablename emits exactly one error per model lacking __tablename__.
func checkTablename(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, model := range ctx.Models {
		if !model.HasTablename {
			findings = append(findings, review.Finding{
				Severity: review.SeverityError,
				Message:  fmt.Sprintf("%s: Missing __tablename__ attribute", model.Name),
				Line:     model.Line,
			})
		}
	}
	return findings
}

// checkTablenameNaming only applies to models that declared a literal table
// name; missing names are MD02's concern.
func checkTablenameNaming(ctx *Context) []review.Finding {
	re := ctx.Options.TableNameRegexp()
	var findings []review.Finding
	for _, model := range ctx.Models {
		if model.HasTablename && model.Tablename != "" && !re.MatchString(model.Tablename) {
			findings = append(findings, review.Finding{
				Severity: review.SeverityWarning,
				Message:  fmt.Sprintf("%s: __tablename__ should be snake_case", model.Name),
				Line:     model.Line,
			})
		}
	}
	return findings
}
