package repository

import (
	"context"
	"io"
	"strings"
	"sync"

	perr "mortgage-agent/errors"
)

// MemorySource is an in-memory SourceRepository.
type MemorySource struct {
	mu   sync.RWMutex
	data map[string]string
	// readers handed out and not yet closed
	opened int
}

func NewMemorySource() *MemorySource {
	return &MemorySource{
		data: make(map[string]string),
	}
}

func (m *MemorySource) Put(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = content
}

func (m *MemorySource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, ok := m.data[name]
	if !ok {
		return nil, perr.New(perr.ErrorCodeNotFound, notFoundMessage(name))
	}
	m.opened++
	return &memoryReader{Reader: strings.NewReader(val), owner: m}, nil
}

// OpenReaders reports how many readers have not been closed yet.
func (m *MemorySource) OpenReaders() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opened
}

type memoryReader struct {
	*strings.Reader
	owner  *MemorySource
	closed bool
}

func (r *memoryReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.owner.mu.Lock()
	r.owner.opened--
	r.owner.mu.Unlock()
	return nil
}
