// Package storage resolves opaque photo keys to local files. Keys are
// relative paths derived from category id plus file name; the store
// never looks inside the bytes it keeps.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrMissing = errors.New("stored image is missing")

type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) path(categoryID, fileName string) string {
	return filepath.Join(s.root, categoryID, fileName)
}

func (s *FileStore) Save(categoryID, fileName string, content []byte) error {
	dir := filepath.Join(s.root, categoryID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create photo directory %s: %w", dir, err)
	}
	path := s.path(categoryID, fileName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write photo %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) Load(categoryID, fileName string) ([]byte, error) {
	path := s.path(categoryID, fileName)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load photo %s: %w", path, ErrMissing)
		}
		return nil, fmt.Errorf("load photo %s: %w", path, err)
	}
	return content, nil
}

// Delete removes stored bytes. A key that is already gone is not an
// error; replace and delete flows must stay idempotent.
func (s *FileStore) Delete(categoryID, fileName string) error {
	path := s.path(categoryID, fileName)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete photo %s: %w", path, err)
	}
	return nil
}
