package repository

import (
	"context"
	"io"
)

// SourceRepository opens named prospect documents for reading.
// A name that cannot be located or opened yields a perr NotFound error.
type SourceRepository interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

func notFoundMessage(name string) string {
	return "Resource file not found: " + name
}
