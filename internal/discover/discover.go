// Package discover locates the project files worth reviewing: route modules,
// model modules, migration scripts, and configuration files. All results are
// deduplicated, stripped of __init__.py, and sorted so every run visits files
// in the same order.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var routeFilePatterns = []string{
	"*views.py",
	"routes*.py",
	"api*.py",
	"blueprint*.py",
	"endpoints*.py",
}

var routeEntrypoints = []string{"app.py", "main.py", "application.py"}

var routeDirs = []string{"views", "routes", "api", "blueprints", "endpoints"}

var modelDirs = []string{
	"models",
	filepath.Join("app", "models"),
	filepath.Join("src", "models"),
	filepath.Join("application", "models"),
}

var modelFiles = []string{
	"models.py",
	filepath.Join("app", "models.py"),
	filepath.Join("src", "models.py"),
}

var migrationDirs = []string{
	"migrations",
	"alembic",
	filepath.Join("db", "migrations"),
}

var configFiles = []string{
	"config.py",
	filepath.Join("app", "config.py"),
	"settings.py",
	".env",
	"app.py",
}

// RouteFiles returns candidate route files anywhere under root, matched by
// filename shape, plus Python files in conventional route directories and the
// application entry points at the root.
func RouteFiles(root string) ([]string, error) {
	found := make(map[string]bool)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "__pycache__" {
				return filepath.SkipDir
			}
			return nil
		}
		for _, pattern := range routeFilePatterns {
			if ok, _ := filepath.Match(pattern, d.Name()); ok {
				found[path] = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, name := range routeEntrypoints {
		path := filepath.Join(root, name)
		if fileExists(path) {
			found[path] = true
		}
	}
	for _, dir := range routeDirs {
		addPythonDir(found, filepath.Join(root, dir))
	}

	return sorted(found), nil
}

// ModelFiles returns Python files from the conventional model directories and
// the conventional standalone model modules.
func ModelFiles(root string) ([]string, error) {
	found := make(map[string]bool)
	for _, dir := range modelDirs {
		addPythonDir(found, filepath.Join(root, dir))
	}
	for _, name := range modelFiles {
		path := filepath.Join(root, name)
		if fileExists(path) {
			found[path] = true
		}
	}
	return sorted(found), nil
}

// MigrationsDir returns the project's migrations directory, or "" when the
// project has none.
func MigrationsDir(root string) string {
	for _, dir := range migrationDirs {
		path := filepath.Join(root, dir)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// MigrationScripts returns the migration scripts under dir/versions.
func MigrationScripts(migrationsDir string) ([]string, error) {
	versions := filepath.Join(migrationsDir, "versions")
	entries, err := os.ReadDir(versions)
	if err != nil {
		return nil, err
	}
	var scripts []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == "__init__.py" || !strings.HasSuffix(name, ".py") {
			continue
		}
		scripts = append(scripts, filepath.Join(versions, name))
	}
	sort.Strings(scripts)
	return scripts, nil
}

// ConfigFiles returns the conventional configuration files that exist.
func ConfigFiles(root string) []string {
	var out []string
	for _, name := range configFiles {
		path := filepath.Join(root, name)
		if fileExists(path) {
			out = append(out, path)
		}
	}
	return out
}

// PythonFiles returns every Python file under root, skipping __pycache__.
func PythonFiles(root string) ([]string, error) {
	found := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "__pycache__" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".py") && d.Name() != "__init__.py" {
			found[path] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sorted(found), nil
}

func addPythonDir(found map[string]bool, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".py") {
			continue
		}
		found[filepath.Join(dir, name)] = true
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func sorted(found map[string]bool) []string {
	out := make([]string, 0, len(found))
	for path := range found {
		if filepath.Base(path) == "__init__.py" {
			continue
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}
