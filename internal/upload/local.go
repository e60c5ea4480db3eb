package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage writes images to a directory served statically under prefix.
type LocalStorage struct {
	dir    string
	prefix string
}

func NewLocalStorage(dir, prefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir, prefix: "/" + strings.Trim(prefix, "/")}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Prefix() string {
	return s.prefix
}

func (s *LocalStorage) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	dst, err := os.Create(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return path.Join(s.prefix, filepath.Base(name)), nil
}

// Remove deletes the file behind ref. Refs outside the prefix and files
// that are already gone are ignored.
func (s *LocalStorage) Remove(_ context.Context, ref string) error {
	if !strings.HasPrefix(ref, s.prefix+"/") {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(ref, s.prefix+"/"))
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
