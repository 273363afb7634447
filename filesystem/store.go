// Package filesystem provides the file system storage backend for assetvault.
// All access goes through an os.Root so requests can never escape the assets
// root, even if a hostile path slips past validation.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/assetvault/assetvault"
)

// Store provides read-only file system access scoped to a root directory.
type Store struct {
	root *os.Root
}

// NewStore creates a Store over the given root directory. The root provides
// sandboxed file operations preventing path traversal.
func NewStore(root *os.Root) *Store {
	return &Store{root: root}
}

// Open opens a file for reading and stats it. Returns assetvault.ErrNotFound
// if the file does not exist.
func (s *Store) Open(ctx context.Context, p string) (io.ReadSeekCloser, fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := s.root.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, assetvault.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return f, info, nil
}

// DirExists reports whether dir exists under the root and is a directory.
func (s *Store) DirExists(ctx context.Context, dir string) bool {
	if ctx.Err() != nil {
		return false
	}

	info, err := fs.Stat(s.root.FS(), dir)
	return err == nil && info.IsDir()
}

// List enumerates every regular file under dir and returns slash-separated
// paths relative to dir. The traversal is iterative with an explicit stack,
// so deeply nested trees cannot exhaust the call stack. Order follows the
// directory entries and is not significant to callers.
func (s *Store) List(ctx context.Context, dir string) ([]string, error) {
	files := []string{}

	stack := []string{dir}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := fs.ReadDir(s.root.FS(), d)
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		for _, entry := range entries {
			p := path.Join(d, entry.Name())

			switch {
			case entry.IsDir():
				stack = append(stack, p)
			case entry.Type().IsRegular():
				files = append(files, strings.TrimPrefix(p, dir+"/"))
			}
		}
	}

	return files, nil
}
