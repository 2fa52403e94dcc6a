package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chatelo/freview/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "freview v"+Version)
	assert.Contains(t, out, "Flask project reviewer built with Go")
}

func TestRulesList(t *testing.T) {
	out, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "RT01")
	assert.Contains(t, out, "MD02")
	assert.Contains(t, out, "MG03")
	assert.Contains(t, out, "RL03")
}

func TestRulesListJSON(t *testing.T) {
	out, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var infos []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	assert.NotEmpty(t, infos)
}

func TestRulesTypeFilter(t *testing.T) {
	out, err := execute(t, "rules", "--type", "models")
	require.NoError(t, err)
	assert.Contains(t, out, "MD02")
	assert.NotContains(t, out, "RT01")
}

func TestRulesShowUnknown(t *testing.T) {
	_, err := execute(t, "rules", "ZZ99")
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Created")

	data, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "show_success")

	_, err = execute(t, "init", dir)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", dir, "--force")
	assert.NoError(t, err)
}

func TestReviewCommandJSON(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"),
		[]byte("from flask import Flask\napp = Flask(__name__)\n\n@app.route('/')\ndef index():\n    \"\"\"Home.\"\"\"\n    return 'ok'\n"), 0o644))

	out, err := execute(t, "review", root, "--format", "json")
	require.NoError(t, err)

	var got struct {
		RunID    string                     `json:"run_id"`
		Findings map[string]json.RawMessage `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.RunID)
	assert.Contains(t, got.Findings, "app.py")
}

func TestReviewCommandSave(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"),
		[]byte("from flask import Flask\napp = Flask(__name__)\n"), 0o644))
	reportFile := filepath.Join(t.TempDir(), "report.md")

	out, err := execute(t, "review", root, "--save", "--report-file", reportFile)
	require.NoError(t, err)
	assert.Contains(t, out, "📝 Saved Markdown report")

	data, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Flask Project Review Report")
}

func TestReviewMissingPath(t *testing.T) {
	_, err := execute(t, "review", filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
