package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Backend is the storage port: opaque payloads addressed by key.
type Backend interface {
	// Get returns the payload stored under key. ok is false when nothing is stored.
	Get(ctx context.Context, key string) (b []byte, ok bool, err error)
	Put(ctx context.Context, key string, b []byte) error
	Close() error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	sqliteFileName = "organizer.sqlite"
)

// OpenBackend opens the named backend rooted at dir. An empty kind selects
// the file backend.
func OpenBackend(ctx context.Context, kind, dir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendFile:
		b := &FileBackend{Dir: dir}
		if err := b.Ensure(); err != nil {
			return nil, err
		}
		return b, nil
	case BackendSQLite:
		return OpenSQLite(ctx, filepath.Join(dir, sqliteFileName))
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s (want file|sqlite|memory)", kind)
	}
}

// MemoryBackend keeps payloads in process memory.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: map[string][]byte{}}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *MemoryBackend) Put(_ context.Context, key string, b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), b...)
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
