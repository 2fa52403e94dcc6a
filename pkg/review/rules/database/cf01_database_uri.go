package database

import (
	"strings"

	"github.com/Chatelo/freview/pkg/review"
)

func init() {
	Register(RuleDef{
		ID:          "CF01",
		Name:        "database-uri",
		Group:       "config",
		Description: "Configuration declares a database URI",
		Severity:    review.SeverityWarning,
		Kind:        KindConfig,
		CheckConfig: checkDatabaseURI,
	})
	Register(RuleDef{
		ID:          "CF02",
		Name:        "hardcoded-credentials",
		Group:       "config",
		Description: "Database URI embeds literal credentials",
		Severity:    review.SeveritySecurity,
		Kind:        KindConfig,
		CheckConfig: checkHardcodedCredentials,
	})
}

func checkDatabaseURI(ctx *ConfigContext) []review.Finding {
	upper := strings.ToUpper(ctx.Content)
	if !strings.Contains(upper, "DATABASE_URI") && !strings.Contains(upper, "SQLALCHEMY_DATABASE_URI") {
		return []review.Finding{{
			Severity: review.SeverityWarning,
			Message:  "No database URI configuration found",
		}}
	}
	return []review.Finding{{
		Severity: review.SeveritySuccess,
		Message:  "Database URI configuration present",
	}}
}

var credentialMarkers = []string{"password=", "passwd=", "://user:"}

// checkHardcodedCredentials only fires when a database URI is configured at
// all; a file without one has nothing to leak.
func checkHardcodedCredentials(ctx *ConfigContext) []review.Finding {
	upper := strings.ToUpper(ctx.Content)
	if !strings.Contains(upper, "DATABASE_URI") && !strings.Contains(upper, "SQLALCHEMY_DATABASE_URI") {
		return nil
	}
	for _, marker := range credentialMarkers {
		if strings.Contains(ctx.Content, marker) {
			return []review.Finding{
				{
					Severity: review.SeveritySecurity,
					Message:  "Warning: Potential hardcoded database credentials",
				},
				{
					Severity: review.SeverityHint,
					Message:  "Use environment variables: os.environ.get('DATABASE_URL')",
				},
			}
		}
	}
	return nil
}
