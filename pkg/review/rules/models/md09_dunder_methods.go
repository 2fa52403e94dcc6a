package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "MD09",
		Name:        "dunder-methods",
		Group:       "models",
		Description: "Model could define __repr__ or __str__ for nicer output",
		Severity:    review.SeverityInfo,
		Check:       checkDunderMethods,
	})
	Register(RuleDef{
		ID:          "MD10",
		Name:        "inheritance",
		Group:       "models",
		Description: "Model inherits from classes beyond the declarative base",
		Severity:    review.SeverityInfo,
		Check:       checkInheritance,
	})
}

func checkDunderMethods(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, model := range ctx.Models {
		if ctx.Options.CheckReprMethods && !slices.Contains(model.Methods, "__repr__") {
			findings = append(findings, review.Finding{
				Severity: review.SeverityInfo,
				Message:  fmt.Sprintf("%s: Consider adding __repr__ method for better debugging", model.Name),
				Line:     model.Line,
			})
		}
		if ctx.Options.CheckStrMethods && !slices.Contains(model.Methods, "__str__") {
			findings = append(findings, review.Finding{
				Severity: review.SeverityInfo,
				Message:  fmt.Sprintf("%s: Consider adding __str__ method for string representation", model.Name),
				Line:     model.Line,
			})
		}
	}
	return findings
}

func checkInheritance(ctx *Context) []review.Finding {
	var findings []review.Finding
	for _, model := range ctx.Models {
		// The plain declarative bases carry no extra information for the
		// reader, so only mixins and custom bases are reported.
		var interesting []string
		for _, base := range model.BaseClasses {
			if base == "Model" || base == "Base" {
				continue
			}
			interesting = append(interesting, base)
		}
		if len(interesting) == 0 {
			continue
		}
		findings = append(findings, review.Finding{
			Severity: review.SeverityInfo,
			Message:  fmt.Sprintf("%s: Inherits from %s", model.Name, strings.Join(interesting, ", ")),
			Line:     model.Line,
		})
	}
	return findings
}
