package discover

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Chatelo/freview/pkg/review"
)

var entryFiles = []string{"run.py", "main.py", "app.py", "config.py"}

// Structure runs the whole-project layout checks: an entry file, a models
// package, the conventional template/static directories, and a configuration
// file. An empty result means the layout looks fine.
func Structure(root string) []review.Finding {
	var findings []review.Finding
	warn := func(msg string) {
		findings = append(findings, review.Finding{
			RuleID:   "ST01",
			Severity: review.SeverityWarning,
			Message:  msg,
			File:     review.KeyProject,
		})
	}

	entryFound := false
	for _, name := range entryFiles {
		if fileExists(filepath.Join(root, name)) {
			entryFound = true
			break
		}
	}
	if !entryFound {
		warn("Missing entry file: expected one of run.py, main.py, or app.py")
	}

	modelsDir := filepath.Join(root, "models")
	if info, err := os.Stat(modelsDir); err != nil || !info.IsDir() {
		warn("Missing 'models/' directory")
	} else if !fileExists(filepath.Join(modelsDir, "__init__.py")) {
		warn("Missing '__init__.py' in 'models/' directory")
	}

	for _, dir := range []string{"templates", "static"} {
		if info, err := os.Stat(filepath.Join(root, dir)); err != nil || !info.IsDir() {
			warn(fmt.Sprintf("Missing optional '%s/' directory", dir))
		}
	}

	if !fileExists(filepath.Join(root, ".env")) && !fileExists(filepath.Join(root, "config.py")) {
		warn("Missing configuration file (.env or config.py)")
	}

	return findings
}
