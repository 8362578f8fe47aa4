package repository

import (
	"context"
	"io"
	"os"
	"path/filepath"

	perr "mortgage-agent/errors"
)

// FileSource resolves names relative to a resource directory.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	if dir == "" {
		dir = "."
	}
	return &FileSource{dir: dir}
}

func (s *FileSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(s.dir, name)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeNotFound, notFoundMessage(name))
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		_ = f.Close()
		return nil, perr.New(perr.ErrorCodeNotFound, notFoundMessage(name))
	}
	return f, nil
}
