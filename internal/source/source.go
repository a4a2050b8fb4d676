package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rocjay1/wire-dashboard/internal/dataerr"
)

// Source opens the named input batch for reading.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileSource reads batches from a local directory.
type FileSource struct {
	Dir string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Open opens name relative to the source directory. A missing file is a *dataerr.DataLoadError.
func (s *FileSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(s.Dir, name)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dataerr.NewLoadError(name, "file not found", err)
		}
		return nil, dataerr.NewLoadError(name, "failed to open file", err)
	}

	slog.Debug("opened input file", "file", name, "path", path)
	return f, nil
}

// ReadAll opens and fully reads name from src.
func ReadAll(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, dataerr.NewLoadError(name, "failed to read file", err)
	}
	return data, nil
}

// String describes the source for logs.
func (s *FileSource) String() string {
	return fmt.Sprintf("dir:%s", s.Dir)
}
