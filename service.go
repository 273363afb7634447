package assetvault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
)

// AssetStorage defines the read-only interface for asset file access.
// Implementations must confine all paths to the assets root so that a
// validated-but-hostile request path can never escape it.
//
// All methods accept a context for cancellation control.
type AssetStorage interface {
	// Open opens the file at path for reading and returns its file info.
	// Returns ErrNotFound if the file does not exist. The caller is
	// responsible for closing the returned ReadSeekCloser.
	Open(ctx context.Context, path string) (io.ReadSeekCloser, fs.FileInfo, error)

	// List enumerates every regular file under dir, recursing into
	// subdirectories, and returns slash-separated paths relative to dir.
	// Directories are traversed but never returned as entries.
	List(ctx context.Context, dir string) ([]string, error)

	// DirExists reports whether dir exists and is a directory.
	DirExists(ctx context.Context, dir string) bool
}

// AssetService combines the client registry with an asset storage backend.
// It is the service behind the HTTP layer's index and file endpoints.
type AssetService struct {
	registry *Registry
	storage  AssetStorage
}

func NewAssetService(registry *Registry, storage AssetStorage) (*AssetService, error) {
	if registry == nil {
		return nil, fmt.Errorf("new asset service: %w: nil registry", ErrInvalidConfig)
	}
	if storage == nil {
		return nil, fmt.Errorf("new asset service: %w: nil storage", ErrInvalidConfig)
	}
	return &AssetService{registry: registry, storage: storage}, nil
}

// Client returns the registered client with the given id.
func (s *AssetService) Client(id string) (Client, bool) {
	return s.registry.Get(id)
}

// ClientByName returns the registered client with the given name.
func (s *AssetService) ClientByName(name string) (Client, bool) {
	return s.registry.GetByName(name)
}

// BuildIndex builds the asset index for client against the given base URL.
// A missing asset directory is not an error: the result is an empty index.
func (s *AssetService) BuildIndex(ctx context.Context, baseURL string, client Client) (AssetIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	if !s.storage.DirExists(ctx, client.Name) {
		return AssetIndex{}, nil
	}

	files, err := s.storage.List(ctx, client.Name)
	if err != nil {
		return nil, fmt.Errorf("build index %s: %w", client.Name, err)
	}

	return BuildAssetIndex(baseURL, client.Name, files), nil
}

// Open opens one asset file belonging to client. The relative path is
// validated before it touches storage; anything invalid, missing, or a
// directory comes back as ErrNotFound.
func (s *AssetService) Open(ctx context.Context, client Client, rel string) (io.ReadSeekCloser, fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("open asset: %w", err)
	}

	if !IsValidPath(rel) {
		return nil, nil, fmt.Errorf("open asset %q: %w", rel, ErrNotFound)
	}

	f, info, err := s.storage.Open(ctx, path.Join(client.Name, rel))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, fmt.Errorf("open asset %q: %w", rel, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("open asset %q: %w", rel, err)
	}

	if info.IsDir() {
		_ = f.Close()
		return nil, nil, fmt.Errorf("open asset %q: %w", rel, ErrNotFound)
	}

	return f, info, nil
}
