// Package filesystem provides the local file system storage backend for servit.
// All access goes through an os.Root, so names cannot escape the served
// directory, not even through symlinks.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sagarc03/servit"
)

// Store provides read-only file system access below a root directory.
type Store struct {
	root *os.Root
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// Stat returns file information for name. Missing files return an error
// matching fs.ErrNotExist.
func (s *Store) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := s.root.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return info, nil
}

// Open opens a file for reading. Returns servit.ErrNotFound if the file does not exist.
func (s *Store) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, servit.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return f, nil
}

// List recursively walks the root directory and returns every regular file
// with its size, modification time and content type. Entries are in lexical
// order. Symlinks and other special files are skipped.
func (s *Store) List(ctx context.Context) ([]servit.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := []servit.Asset{}

	err := s.walkDir(ctx, ".", &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return entries, nil
}

func (s *Store) walkDir(ctx context.Context, path string, entries *[]servit.Asset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), filepath.ToSlash(path))
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryPath := filepath.Join(path, entry.Name())

		if entry.IsDir() {
			if err := s.walkDir(ctx, entryPath, entries); err != nil {
				return err
			}
			continue
		}

		if !entry.Type().IsRegular() {
			slog.Debug("skipping non-regular file", "path", entryPath, "mode", entry.Type().String())
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("walk dir: %w", err)
		}

		*entries = append(*entries, servit.Asset{
			Name:        entryPath,
			Size:        info.Size(),
			ModTime:     info.ModTime(),
			ContentType: servit.ContentType(entryPath),
		})
	}

	return nil
}
