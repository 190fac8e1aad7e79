package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps images in a flat directory on disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(filename string) (string, error) {
	// 拒绝路径穿越，只允许裸文件名
	if filename == "" || filename != filepath.Base(filename) {
		return "", errors.New("invalid filename")
	}
	return filepath.Join(s.dir, filename), nil
}

func (s *LocalStore) Save(_ context.Context, originalName, _ string, r io.Reader, _ int64) (string, error) {
	name := NewFilename(originalName)
	p, err := s.path(name)
	if err != nil {
		return "", err
	}
	f, err := os.Create(p)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(p)
		return "", err
	}
	return name, nil
}

func (s *LocalStore) Open(_ context.Context, filename string) (io.ReadCloser, error) {
	p, err := s.path(filename)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

func (s *LocalStore) Delete(_ context.Context, filename string) error {
	p, err := s.path(filename)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
