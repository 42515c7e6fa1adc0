// Package storage persists uploaded submission files on the local filesystem
// under generated unique names.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrFileMissing indicates a database record references a file that is no
// longer present on disk.
var ErrFileMissing = errors.New("file missing from disk")

// StoredFile describes a persisted upload.
type StoredFile struct {
	Path string
	Size int64
}

// Store abstracts writing and reading submission files.
type Store interface {
	Save(ctx context.Context, originalName string, reader io.Reader) (StoredFile, error)
	Open(path string) (io.ReadCloser, error)
}

type diskStore struct {
	root   string
	logger zerolog.Logger
}

// NewDiskStore creates the upload directory if needed and returns a Store
// backed by it.
func NewDiskStore(root string, logger zerolog.Logger) (Store, error) {
	if root == "" {
		return nil, fmt.Errorf("upload directory must not be empty")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &diskStore{
		root:   root,
		logger: logger.With().Str("component", "disk_store").Logger(),
	}, nil
}

func (s *diskStore) Save(ctx context.Context, originalName string, reader io.Reader) (StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return StoredFile{}, err
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(s.root, name)

	target, err := os.Create(path)
	if err != nil {
		return StoredFile{}, fmt.Errorf("failed to create file: %w", err)
	}

	size, err := io.Copy(target, reader)
	if closeErr := target.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		// Best-effort cleanup of the partial write.
		if removeErr := os.Remove(path); removeErr != nil {
			s.logger.Warn().Err(removeErr).Str("path", path).Msg("failed to remove partial file")
		}
		return StoredFile{}, fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug().Str("path", path).Int64("size", size).Msg("file stored")

	return StoredFile{Path: path, Size: size}, nil
}

func (s *diskStore) Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileMissing
		}
		return nil, err
	}

	return file, nil
}
