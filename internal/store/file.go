package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend stores each key as a JSON file under basePath.
// Writes go to a temporary file that is renamed over the target.
type FileBackend struct {
	basePath string
}

// NewFileBackend constructs a FileBackend rooted at basePath.
func NewFileBackend(basePath string) *FileBackend {
	return &FileBackend{basePath: basePath}
}

// BasePath exposes the backend root path.
func (f *FileBackend) BasePath() string {
	if f == nil {
		return ""
	}
	return f.basePath
}

func (f *FileBackend) path(key string) (string, error) {
	if f == nil {
		return "", errors.New("file backend not configured")
	}
	if key == "" {
		return "", errors.New("key required")
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", fmt.Errorf("invalid key %q", key)
		}
	}
	return filepath.Join(f.basePath, filepath.FromSlash(key)+".json"), nil
}

// Get reads the file stored for key.
func (f *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	target, err := f.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Put writes value for key. Identical content is left untouched.
func (f *FileBackend) Put(_ context.Context, key string, value []byte) error {
	target, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, value) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
