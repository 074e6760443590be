// Package store keeps uploaded video files for the lifetime of a session.
// Objects are the in-process analogue of browser object URLs: created per
// upload attempt and released when the attempt fails or the session ends.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// UploadStore writes uploaded files into a filesystem and hands back
// object paths. The filesystem is abstracted so tests run against memory.
type UploadStore struct {
	fs  afero.Fs
	dir string
}

// NewUploadStore creates a store rooted at dir on the given filesystem.
func NewUploadStore(fs afero.Fs, dir string) (*UploadStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &UploadStore{fs: fs, dir: dir}, nil
}

// Put streams the reader into a new uniquely named object and returns its
// path. The original filename only contributes its extension.
func (s *UploadStore) Put(r io.Reader, originalName string) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(s.dir, name)

	f, err := s.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating upload object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		s.fs.Remove(path)
		return "", fmt.Errorf("writing upload object: %w", err)
	}
	return path, nil
}

// Remove releases a stored object. Removing an already released object is
// not an error.
func (s *UploadStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	err := s.fs.Remove(path)
	if err != nil && !isNotExist(err) {
		return fmt.Errorf("removing upload object %s: %w", path, err)
	}
	return nil
}

// Exists reports whether an object is still stored.
func (s *UploadStore) Exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

func isNotExist(err error) bool {
	return err != nil && os.IsNotExist(err)
}
