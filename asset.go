package servit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"
)

// FileStorage defines the read-only filesystem access the delivery pipeline needs.
//
// Names are relative to the storage root and use the host path separator.
// Implementations must refuse names that leave the root.
type FileStorage interface {
	// Stat returns file information for name. A missing file must produce an
	// error matching fs.ErrNotExist.
	Stat(ctx context.Context, name string) (fs.FileInfo, error)

	// Open opens name for reading. The caller closes the returned file.
	Open(ctx context.Context, name string) (io.ReadSeekCloser, error)
}

// Probe stats loc through storage and evaluates ifModifiedSince against it.
//
// Any failure, including permission errors and non-regular files, is
// reported as ErrNotFound so callers cannot tell absent paths from
// inaccessible ones. Failures other than absence also match ErrStatFailure.
func Probe(ctx context.Context, storage FileStorage, loc Location, ifModifiedSince string) (Asset, bool, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, false, fmt.Errorf("probe: %w", err)
	}

	info, err := storage.Stat(ctx, loc.Name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Asset{}, false, fmt.Errorf("probe %s: %w", loc.Name, ErrNotFound)
		}
		return Asset{}, false, fmt.Errorf("probe %s: %w: %w: %w", loc.Name, ErrNotFound, ErrStatFailure, err)
	}

	if !info.Mode().IsRegular() {
		return Asset{}, false, fmt.Errorf("probe %s: %w: not a regular file", loc.Name, ErrNotFound)
	}

	asset := Asset{
		Name:        loc.Name,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: ContentType(loc.Name),
	}

	return asset, IsFresh(ifModifiedSince, asset.ModTime), nil
}

// IsFresh reports whether a client copy validated by the If-Modified-Since
// value header is still current for a file modified at modTime. HTTP dates
// carry whole seconds only, so modTime is truncated before comparing.
func IsFresh(header string, modTime time.Time) bool {
	if header == "" {
		return false
	}

	since, err := http.ParseTime(header)
	if err != nil {
		return false
	}

	return !modTime.Truncate(time.Second).After(since)
}
