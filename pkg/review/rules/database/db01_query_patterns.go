package database

import (
	"fmt"
	"strings"

	"github.com/Chatelo/freview/pkg/review"
)

// Past this many query attribute accesses without a join the file likely
// loops over a parent collection issuing one query per element.
const nPlusOneThreshold = 5

func init() {
	Register(RuleDef{
		ID:          "DB01",
		Name:        "query-patterns",
		Group:       "usage",
		Description: "File issues ORM queries; flags likely N+1 access",
		Severity:    review.SeverityWarning,
		Kind:        KindUsage,
		CheckUsage: func(ctx *UsageContext) []review.Finding {
			if len(ctx.Usage.QueryCalls) == 0 {
				return nil
			}
			findings := []review.Finding{{
				Severity: review.SeveritySuccess,
				Message:  fmt.Sprintf("Found %d database query pattern(s)", len(ctx.Usage.QueryCalls)),
			}}
			if strings.Count(ctx.Content, ".query") > nPlusOneThreshold &&
				!strings.Contains(strings.ToLower(ctx.Content), "join") {
				findings = append(findings, review.Finding{
					Severity: review.SeverityWarning,
					Message:  "Potential N+1 query problem - consider using joins",
				})
			}
			return findings
		},
	})
	Register(RuleDef{
		ID:          "DB02",
		Name:        "transaction-handling",
		Group:       "usage",
		Description: "Database modifications use explicit transactions",
		Severity:    review.SeverityWarning,
		Kind:        KindUsage,
		CheckUsage: func(ctx *UsageContext) []review.Finding {
			if len(ctx.Usage.Transactions) > 0 {
				return []review.Finding{{
					Severity: review.SeveritySuccess,
					Message:  fmt.Sprintf("Transaction handling detected (%d patterns)", len(ctx.Usage.Transactions)),
				}}
			}
			if strings.Contains(ctx.Content, "db.session.add") || strings.Contains(ctx.Content, "db.session.delete") {
				return []review.Finding{{
					Severity: review.SeverityWarning,
					Message:  "Database modifications without explicit transaction handling",
				}}
			}
			return nil
		},
	})
	Register(RuleDef{
		ID:          "DB03",
		Name:        "raw-sql",
		Group:       "usage",
		Description: "File executes raw SQL strings",
		Severity:    review.SeveritySecurity,
		Kind:        KindUsage,
		CheckUsage:  checkRawSQL,
	})
	Register(RuleDef{
		ID:          "DB04",
		Name:        "db-error-handling",
		Group:       "usage",
		Description: "Database operations are wrapped in error handling",
		Severity:    review.SeverityHint,
		Kind:        KindUsage,
		CheckUsage:  checkDBErrorHandling,
	})
}

var rawSQLQuotes = []string{`"SELECT`, `'SELECT`, `"INSERT`, `'INSERT`}

func checkRawSQL(ctx *UsageContext) []review.Finding {
	if !strings.Contains(ctx.Content, "execute(") {
		return nil
	}
	for _, quote := range rawSQLQuotes {
		if strings.Contains(ctx.Content, quote) {
			return []review.Finding{
				{
					Severity: review.SeverityWarning,
					Message:  "Raw SQL detected - consider using SQLAlchemy ORM",
				},
				{
					Severity: review.SeveritySecurity,
					Message:  "Ensure raw SQL is protected against injection attacks",
				},
			}
		}
	}
	return nil
}

func checkDBErrorHandling(ctx *UsageContext) []review.Finding {
	hasTry := strings.Contains(ctx.Content, "try:")
	if hasTry && (strings.Contains(ctx.Content, "db.session.commit") || strings.Contains(ctx.Content, "query")) {
		return []review.Finding{{
			Severity: review.SeveritySuccess,
			Message:  "Error handling around database operations detected",
		}}
	}
	if strings.Contains(ctx.Content, "db.session.commit") || strings.Contains(ctx.Content, "db.session.add") {
		return []review.Finding{{
			Severity: review.SeverityHint,
			Message:  "Consider adding error handling around database operations",
		}}
	}
	return nil
}
