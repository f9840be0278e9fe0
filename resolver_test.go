package servit_test

import (
	"path/filepath"
	"testing"

	"github.com/sagarc03/servit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolver_Base(t *testing.T) {
	wd := filepath.FromSlash("/srv/app")

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{name: "empty dir uses working directory", dir: "", want: filepath.FromSlash("/srv/app")},
		{name: "relative dir joined onto working directory", dir: "dist", want: filepath.FromSlash("/srv/app/dist")},
		{name: "relative dir is cleaned", dir: "./dist/../public/", want: filepath.FromSlash("/srv/app/public")},
		{name: "absolute dir used as is", dir: filepath.FromSlash("/var/www"), want: filepath.FromSlash("/var/www")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := servit.DefaultOptions()
			opts.RootDir = tt.dir
			r := servit.NewResolver(wd, opts)
			assert.Equal(t, tt.want, r.Base())
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	base := filepath.FromSlash("/srv/dist")
	opts := servit.DefaultOptions()
	opts.RootDir = base
	r := servit.NewResolver("/", opts)

	tests := []struct {
		name     string
		path     string
		wantName string
	}{
		{name: "plain file", path: "/file.html", wantName: "file.html"},
		{name: "nested file", path: "/css/app.css", wantName: filepath.FromSlash("css/app.css")},
		{name: "root gets index file", path: "/", wantName: "index.html"},
		{name: "empty path gets index file", path: "", wantName: "index.html"},
		{name: "nested directory gets index file", path: "/deep/", wantName: filepath.FromSlash("deep/index.html")},
		{name: "dot dot inside root collapses", path: "/css/../file.html", wantName: "file.html"},
		{name: "redundant slashes collapse", path: "//css///app.css", wantName: filepath.FromSlash("css/app.css")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := r.Resolve(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, loc.Name)
			assert.Equal(t, filepath.Join(base, tt.wantName), loc.Path)
		})
	}
}

func TestResolver_Resolve_CustomIndexFile(t *testing.T) {
	opts := servit.DefaultOptions()
	opts.RootDir = "dist"
	opts.IndexFile = "index2.html"
	r := servit.NewResolver(filepath.FromSlash("/srv"), opts)

	loc, err := r.Resolve("/")

	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/srv/dist/index2.html"), loc.Path)
	assert.Equal(t, "index2.html", loc.Name)
}

func TestResolver_Resolve_Traversal(t *testing.T) {
	opts := servit.DefaultOptions()
	opts.RootDir = filepath.FromSlash("/srv/dist")
	r := servit.NewResolver("/", opts)

	paths := []string{
		"/../index.js",
		"../index.js",
		"/../../../../etc/passwd",
		"/css/../../index.js",
		"/a/b/c/../../../../secret",
		"/..",
		"/../",
		"/../dist-backup/file.html",
		"/../dist2/index.html",
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			loc, err := r.Resolve(p)
			assert.ErrorIs(t, err, servit.ErrPathEscape)
			assert.ErrorIs(t, err, servit.ErrNotFound)
			assert.Empty(t, loc.Path)
		})
	}
}

func TestResolver_Resolve_RootDirectoryItself(t *testing.T) {
	opts := servit.DefaultOptions()
	opts.RootDir = filepath.FromSlash("/srv/dist")
	r := servit.NewResolver("/", opts)

	loc, err := r.Resolve("/css/..")

	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/srv/dist"), loc.Path)
	assert.Equal(t, ".", loc.Name)
}

func TestResolver_Resolve_FilesystemRoot(t *testing.T) {
	opts := servit.DefaultOptions()
	opts.RootDir = string(filepath.Separator)
	r := servit.NewResolver("/", opts)

	loc, err := r.Resolve("/etc/hosts")

	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/etc/hosts"), loc.Path)
}
