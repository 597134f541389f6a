package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes uploads into a directory that is also served statically.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, name, _ string, r io.Reader, _ int64) error {
	dst, err := os.Create(filepath.Join(s.Dir, filepath.Base(name)))
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		return err
	}

	return dst.Close()
}
