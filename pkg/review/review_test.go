package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityRoundTrip(t *testing.T) {
	severities := []Severity{
		SeverityError, SeverityWarning, SeverityInfo,
		SeverityHint, SeveritySuccess, SeveritySecurity,
	}
	for _, sev := range severities {
		parsed, ok := ParseSeverity(sev.String())
		assert.True(t, ok, sev.String())
		assert.Equal(t, sev, parsed)
	}

	_, ok := ParseSeverity("loud")
	assert.False(t, ok)
}

func TestFindingString(t *testing.T) {
	f := Finding{Severity: SeverityWarning, Message: "Route 'create' should include error handling"}
	assert.Equal(t, "⚠️ Route 'create' should include error handling", f.String())
}

func TestReportAddAndCounts(t *testing.T) {
	r := make(Report)
	r.Add("app.py") // no findings, no key
	assert.NotContains(t, r, "app.py")

	r.Add("app.py",
		Finding{Severity: SeverityError, Message: "a"},
		Finding{Severity: SeverityWarning, Message: "b"})
	r.Add(KeyProject, Finding{Severity: SeverityWarning, Message: "c"})

	assert.Equal(t, 3, r.Total())
	assert.Equal(t, 1, r.CountBySeverity(SeverityError))
	assert.Equal(t, 2, r.CountBySeverity(SeverityWarning))
	assert.Len(t, r["app.py"], 2)
}

func TestOptionsEscalate(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, SeverityWarning, opts.Escalate(SeverityWarning))

	opts.WarningAsError = true
	assert.Equal(t, SeverityError, opts.Escalate(SeverityWarning))
	assert.Equal(t, SeverityHint, opts.Escalate(SeverityHint))

	opts = DefaultOptions()
	opts.ErrorAsWarning = true
	assert.Equal(t, SeverityWarning, opts.Escalate(SeverityError))
}

func TestOptionsPatternFallback(t *testing.T) {
	opts := DefaultOptions()
	opts.TableNamePattern = "["
	assert.True(t, opts.TableNameRegexp().MatchString("users"), "broken pattern falls back to default")
	assert.False(t, opts.TableNameRegexp().MatchString("Users"))
}

func TestRouteRecordHelpers(t *testing.T) {
	r := RouteRecord{Name: "index", Path: "/", Methods: []string{"GET"}}
	assert.True(t, r.IsGETOnly())
	assert.True(t, r.HasMethod("GET"))
	assert.False(t, r.HasMethod("POST"))
	assert.False(t, r.IsSensitive())

	r = RouteRecord{Name: "delete_account", Path: "/account", Methods: []string{"GET", "POST"}}
	assert.False(t, r.IsGETOnly())
	assert.True(t, r.IsSensitive())
}

func TestImportSet(t *testing.T) {
	s := NewImportSet()
	s.Add("flask_sqlalchemy")
	assert.True(t, s.ContainsSubstring("flask"))
	assert.True(t, s.ContainsSubstring("SQLAlchemy"))
	assert.False(t, s.ContainsSubstring("django"))
}
