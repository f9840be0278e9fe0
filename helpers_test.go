package servit_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sagarc03/servit"
	"github.com/sagarc03/servit/filesystem"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	if !mtime.IsZero() {
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
}

func openStorage(t *testing.T, dir string) *filesystem.Store {
	t.Helper()
	root, err := os.OpenRoot(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })
	return filesystem.NewFileStorage(root)
}

func newService(t *testing.T, dir string, ov servit.Overrides) *servit.Service {
	t.Helper()
	opts := servit.DefaultOptions().Merge(ov)
	opts.RootDir = dir
	resolver := servit.NewResolver(dir, opts)
	s, err := servit.NewService(openStorage(t, resolver.Base()), resolver, opts)
	require.NoError(t, err)
	return s
}
