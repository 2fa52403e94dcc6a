package database

import (
	"fmt"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "MG01",
		Name:        "migration-upgrade",
		Group:       "migrations",
		Description: "Migration script lacks an upgrade() function",
		Severity:    review.SeverityWarning,
		Kind:        KindMigration,
		CheckMigration: func(ctx *MigrationContext) []review.Finding {
			if ctx.Migration.HasUpgrade {
				return nil
			}
			return []review.Finding{{
				Severity: review.SeverityWarning,
				Message:  fmt.Sprintf("Migration %s missing upgrade() function", ctx.ScriptName()),
			}}
		},
	})
	Register(RuleDef{
		ID:          "MG02",
		Name:        "migration-downgrade",
		Group:       "migrations",
		Description: "Migration script lacks a downgrade() function",
		Severity:    review.SeverityWarning,
		Kind:        KindMigration,
		CheckMigration: func(ctx *MigrationContext) []review.Finding {
			if ctx.Migration.HasDowngrade {
				return nil
			}
			return []review.Finding{{
				Severity: review.SeverityWarning,
				Message:  fmt.Sprintf("Migration %s missing downgrade() function", ctx.ScriptName()),
			}}
		},
	})
}
