package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores objects as plain files under a base directory. The directory
// is served by the HTTP server under /media.
type Local struct {
	baseDir string
}

func NewLocal(baseDir string) (*Local, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Local{baseDir: baseDir}, nil
}

func (l *Local) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	out, err := os.Create(filepath.Join(l.baseDir, key))
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return err
	}
	return out.Sync()
}

func (l *Local) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(l.baseDir, key))
}

func (l *Local) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(l.baseDir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *Local) URL(key string) string {
	return "/media/" + key
}

// Dir returns the base directory so the server can mount it statically.
func (l *Local) Dir() string {
	return l.baseDir
}
