package servit

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolver maps logical request paths onto files below a base directory.
type Resolver struct {
	base      string
	indexFile string
}

// NewResolver creates a Resolver for opts. workDir is the directory a
// relative opts.RootDir is joined onto; callers capture it once at startup.
func NewResolver(workDir string, opts Options) *Resolver {
	base := opts.RootDir
	if !filepath.IsAbs(base) {
		base = filepath.Join(workDir, base)
	}

	return &Resolver{
		base:      filepath.Clean(base),
		indexFile: opts.IndexFile,
	}
}

// Base returns the absolute directory resolution is confined to.
func (r *Resolver) Base() string {
	return r.base
}

// Resolve turns a logical path into a Location under the base directory.
// Paths ending in "/" get the index file appended. Joining is lexical, so
// ".." segments are collapsed without touching the filesystem. A result
// outside the base directory fails with an error matching both
// ErrPathEscape and ErrNotFound.
func (r *Resolver) Resolve(logical string) (Location, error) {
	name := logical
	if name == "" || strings.HasSuffix(name, "/") {
		name += r.indexFile
	}

	p := filepath.Join(r.base, filepath.FromSlash(name))
	if !r.contains(p) {
		return Location{}, fmt.Errorf("resolve %q: %w: %w", logical, ErrNotFound, ErrPathEscape)
	}

	rel, err := filepath.Rel(r.base, p)
	if err != nil {
		return Location{}, fmt.Errorf("resolve %q: %w: %w", logical, ErrNotFound, err)
	}

	return Location{Path: p, Name: rel}, nil
}

// contains reports whether p is the base directory or lies below it. The
// trailing separator keeps siblings such as /srv/dist-old out of /srv/dist.
func (r *Resolver) contains(p string) bool {
	if p == r.base {
		return true
	}

	prefix := r.base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	return strings.HasPrefix(p, prefix)
}
