package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chatelo/freview/internal/engine"
	"github.com/Chatelo/freview/pkg/review"
)

func sampleResult() *engine.Result {
	report := review.Report{}
	report.Add(review.KeyProject, review.Finding{
		RuleID: "ST01", Severity: review.SeverityWarning, Message: "Missing 'models/' directory", File: review.KeyProject,
	})
	report.Add(review.KeyAPIArchitecture, review.Finding{
		RuleID: "AR06", Severity: review.SeveritySuccess, Message: "Good: Project uses 1 blueprint(s)", File: review.KeyAPIArchitecture,
	})
	report.Add("app.py", review.Finding{
		RuleID: "RT04", Severity: review.SeverityWarning, Message: "Route 'create' should include error handling", File: "app.py",
	})
	report.Add("models.py", review.Finding{
		RuleID: "MD02", Severity: review.SeverityError, Message: "User: Missing __tablename__ attribute", File: "models.py",
	})

	return &engine.Result{
		RunID:     "run-1",
		Root:      "/tmp/project",
		StartedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Duration:  42 * time.Millisecond,
		Report:    report,
		Routes:    make([]review.RouteRecord, 3),
		Models:    make([]review.ModelRecord, 2),
	}
}

func TestFileKeys(t *testing.T) {
	res := sampleResult()
	assert.Equal(t, []string{"app.py", "models.py"}, FileKeys(res.Report))
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleResult()))
	out := buf.String()

	assert.Contains(t, out, "# Flask Project Review Report")
	assert.Contains(t, out, "## Project Structure")
	assert.Contains(t, out, "- ⚠️ Missing 'models/' directory")
	assert.Contains(t, out, "## API Architecture")
	assert.Contains(t, out, "- ✅ Good: Project uses 1 blueprint(s)")
	assert.Contains(t, out, "## File Checks")
	assert.Contains(t, out, "### app.py")
	assert.Contains(t, out, "### models.py")
	assert.NotContains(t, out, "## Migrations")
}

func TestWriteMarkdownCleanStructure(t *testing.T) {
	res := sampleResult()
	delete(res.Report, review.KeyProject)

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, res))
	assert.Contains(t, buf.String(), "✅ Project structure looks good!")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var got struct {
		RunID      string `json:"run_id"`
		Root       string `json:"root"`
		DurationMS int64  `json:"duration_ms"`
		Summary    struct {
			Total    int `json:"total"`
			Errors   int `json:"errors"`
			Warnings int `json:"warnings"`
			Routes   int `json:"routes"`
			Models   int `json:"models"`
		} `json:"summary"`
		Findings map[string][]review.Finding `json:"findings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, "/tmp/project", got.Root)
	assert.Equal(t, int64(42), got.DurationMS)
	assert.Equal(t, 4, got.Summary.Total)
	assert.Equal(t, 1, got.Summary.Errors)
	assert.Equal(t, 2, got.Summary.Warnings)
	assert.Equal(t, 3, got.Summary.Routes)
	assert.Equal(t, 2, got.Summary.Models)
	assert.Len(t, got.Findings["app.py"], 1)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "review_report.md")
	require.NoError(t, Save(path, "markdown", sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Flask Project Review Report")
}
