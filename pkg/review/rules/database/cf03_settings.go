package database

import (
	"fmt"
	"strings"

	"github.com/Chatelo/freview/pkg/review"
)

var poolSettings = []string{
	"SQLALCHEMY_POOL_SIZE",
	"SQLALCHEMY_POOL_TIMEOUT",
	"SQLALCHEMY_MAX_OVERFLOW",
}

var sqlalchemySettings = []string{
	"SQLALCHEMY_TRACK_MODIFICATIONS",
	"SQLALCHEMY_ECHO",
	"SQLALCHEMY_RECORD_QUERIES",
}

func init() {
	Register(RuleDef{
		ID:          "CF03",
		Name:        "connection-pool",
		Group:       "config",
		Description: "Configuration tunes the connection pool",
		Severity:    review.SeverityHint,
		Kind:        KindConfig,
		CheckConfig: func(ctx *ConfigContext) []review.Finding {
			found := settingsPresent(ctx.Content, poolSettings)
			if len(found) == 0 {
				return []review.Finding{{
					Severity: review.SeverityHint,
					Message:  "Consider configuring connection pool settings for production",
				}}
			}
			return []review.Finding{{
				Severity: review.SeveritySuccess,
				Message:  fmt.Sprintf("Connection pool settings configured: %s", strings.Join(found, ", ")),
			}}
		},
	})
	Register(RuleDef{
		ID:          "CF04",
		Name:        "sqlalchemy-settings",
		Group:       "config",
		Description: "Configuration sets SQLAlchemy behavior flags",
		Severity:    review.SeveritySuccess,
		Kind:        KindConfig,
		CheckConfig: func(ctx *ConfigContext) []review.Finding {
			found := settingsPresent(ctx.Content, sqlalchemySettings)
			if len(found) == 0 {
				return nil
			}
			return []review.Finding{{
				Severity: review.SeveritySuccess,
				Message:  fmt.Sprintf("SQLAlchemy settings configured: %s", strings.Join(found, ", ")),
			}}
		},
	})
	Register(RuleDef{
		ID:          "CF05",
		Name:        "environment-config",
		Group:       "config",
		Description: "Configuration is read from the environment",
		Severity:    review.SeverityHint,
		Kind:        KindConfig,
		CheckConfig: func(ctx *ConfigContext) []review.Finding {
			if strings.Contains(ctx.Content, "os.environ") || strings.Contains(ctx.Content, "getenv") {
				return []review.Finding{{
					Severity: review.SeveritySuccess,
					Message:  "Environment-based configuration detected",
				}}
			}
			return []review.Finding{{
				Severity: review.SeverityHint,
				Message:  "Consider using environment variables for configuration",
			}}
		},
	})
}

func settingsPresent(content string, settings []string) []string {
	var found []string
	for _, s := range settings {
		if strings.Contains(content, s) {
			found = append(found, s)
		}
	}
	return found
}
