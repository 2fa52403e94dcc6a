package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("pass\n"), 0o644))
	return path
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestRouteFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py")
	writeFile(t, root, "api_users.py")
	writeFile(t, root, "admin/views.py")
	writeFile(t, root, "routes/auth.py")
	writeFile(t, root, "routes/__init__.py")
	writeFile(t, root, "__pycache__/views.py")
	writeFile(t, root, "helpers.py")

	got, err := RouteFiles(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"admin/views.py",
		"api_users.py",
		"app.py",
		"routes/auth.py",
	}, relAll(t, root, got))
}

func TestRouteFilesDeduplicated(t *testing.T) {
	// routes/routes.py matches both the filename pattern and the directory
	// scan; it must appear once.
	root := t.TempDir()
	writeFile(t, root, "routes/routes.py")

	got, err := RouteFiles(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"routes/routes.py"}, relAll(t, root, got))
}

func TestModelFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "models/user.py")
	writeFile(t, root, "models/__init__.py")
	writeFile(t, root, "models/README.md")
	writeFile(t, root, "app/models.py")

	got, err := ModelFiles(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"app/models.py", "models/user.py"}, relAll(t, root, got))
}

func TestMigrationsDir(t *testing.T) {
	root := t.TempDir()
	assert.Empty(t, MigrationsDir(root))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "migrations"), 0o755))
	assert.Equal(t, filepath.Join(root, "migrations"), MigrationsDir(root))
}

func TestMigrationsDirAlembic(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "alembic"), 0o755))
	assert.Equal(t, filepath.Join(root, "alembic"), MigrationsDir(root))
}

func TestMigrationScripts(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "migrations")
	writeFile(t, root, "migrations/versions/b2_add_teams.py")
	writeFile(t, root, "migrations/versions/a1_initial.py")
	writeFile(t, root, "migrations/versions/__init__.py")
	writeFile(t, root, "migrations/versions/notes.txt")

	got, err := MigrationScripts(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/versions/a1_initial.py",
		"migrations/versions/b2_add_teams.py",
	}, relAll(t, root, got))
}

func TestMigrationScriptsMissingVersions(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "migrations"), 0o755))

	_, err := MigrationScripts(filepath.Join(root, "migrations"))
	assert.Error(t, err)
}

func TestConfigFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config.py")
	writeFile(t, root, ".env")

	got := ConfigFiles(root)
	assert.Equal(t, []string{"config.py", ".env"}, relAll(t, root, got))
}

func TestPythonFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py")
	writeFile(t, root, "pkg/__init__.py")
	writeFile(t, root, "pkg/service.py")
	writeFile(t, root, "__pycache__/app.cpython-312.py")
	writeFile(t, root, "notes.md")

	got, err := PythonFiles(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py", "pkg/service.py"}, relAll(t, root, got))
}
