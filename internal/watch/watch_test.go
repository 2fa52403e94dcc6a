package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"app.py", true},
		{"src/models/user.py", true},
		{".env", true},
		{"alembic.ini", true},
		{".freview.yaml", true},
		{"README.md", false},
		{"app.pyc", false},
		{"static/site.css", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relevant(tt.path), tt.path)
	}
}

func TestWatchRunsImmediately(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"), []byte("pass\n"), 0o644))

	ran := make(chan struct{}, 1)
	w := New(root, nil, func(context.Context) {
		select {
		case ran <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not run the callback on start")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop on context cancel")
	}
}
