package database

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Chatelo/freview/pkg/review"
)

// Patterns are reported verbatim so the reader can grep the script for them.
var dangerousOperations = []struct {
	pattern string
	re      *regexp.Regexp
}{
	{"drop_table", regexp.MustCompile(`(?i)drop_table`)},
	{"drop_column", regexp.MustCompile(`(?i)drop_column`)},
	{"alter_column.*nullable=False", regexp.MustCompile(`(?i)alter_column.*nullable=False`)},
}

func init() {
	Register(RuleDef{
		ID:          "MG03",
		Name:        "dangerous-operations",
		Group:       "migrations",
		Description: "Migration script performs destructive schema operations",
		Severity:    review.SeverityWarning,
		Kind:        KindMigration,
		CheckMigration: func(ctx *MigrationContext) []review.Finding {
			var findings []review.Finding
			for _, op := range dangerousOperations {
				if op.re.MatchString(ctx.Content) {
					findings = append(findings, review.Finding{
						Severity: review.SeverityWarning,
						Message:  fmt.Sprintf("Migration %s contains potentially dangerous operation: %s", ctx.ScriptName(), op.pattern),
					})
				}
			}
			return findings
		},
	})
	Register(RuleDef{
		ID:          "MG04",
		Name:        "index-creation",
		Group:       "migrations",
		Description: "Migration script creates indexes",
		Severity:    review.SeveritySuccess,
		Kind:        KindMigration,
		CheckMigration: func(ctx *MigrationContext) []review.Finding {
			if !strings.Contains(ctx.Content, "create_index") {
				return nil
			}
			return []review.Finding{{
				Severity: review.SeveritySuccess,
				Message:  fmt.Sprintf("Migration %s includes index creation", ctx.ScriptName()),
			}}
		},
	})
	Register(RuleDef{
		ID:          "MG05",
		Name:        "foreign-key-constraints",
		Group:       "migrations",
		Description: "Migration script declares foreign key constraints",
		Severity:    review.SeveritySuccess,
		Kind:        KindMigration,
		CheckMigration: func(ctx *MigrationContext) []review.Finding {
			if !strings.Contains(strings.ToLower(ctx.Content), "foreign_key") &&
				!strings.Contains(ctx.Content, "foreignkey") {
				return nil
			}
			return []review.Finding{{
				Severity: review.SeveritySuccess,
				Message:  fmt.Sprintf("Migration %s includes foreign key constraints", ctx.ScriptName()),
			}}
		},
	})
}
