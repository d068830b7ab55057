package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

const storeDirName = ".organizer"

// FileBackend stores each key as <Dir>/<key>.json. Writes go through a temp
// file and rename, so a reader never sees a half-written payload.
type FileBackend struct {
	Dir string
}

func (f *FileBackend) Ensure() error {
	if strings.TrimSpace(f.Dir) == "" {
		return errors.New("file backend: missing dir")
	}
	return os.MkdirAll(f.Dir, 0o755)
}

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

func (f *FileBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return b, true, nil
}

func (f *FileBackend) Put(_ context.Context, key string, b []byte) error {
	if err := f.Ensure(); err != nil {
		return err
	}
	path := f.path(key)
	if err := atomic.WriteFile(path, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	// atomic.WriteFile leaves new files with the temp file's 0600 mode.
	_ = os.Chmod(path, 0o644)
	return nil
}

func (f *FileBackend) Close() error { return nil }

// DiscoverDir walks up from start looking for a .organizer directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, storeDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir returns the nearest .organizer directory above the working
// directory, or ./.organizer when there is none.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, storeDirName), nil
}
