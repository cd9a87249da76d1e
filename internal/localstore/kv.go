package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var validKey = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// FileKV is a key-value store keeping one file per key inside a directory.
// Writes go to a temp file first and are renamed into place.
type FileKV struct {
	dir string
}

// NewFileKV returns a store rooted at dir, creating the directory on first write.
func NewFileKV(dir string) (*FileKV, error) {
	resolved, err := expandPath(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	return &FileKV{dir: resolved}, nil
}

// Dir returns the resolved directory.
func (kv *FileKV) Dir() string {
	return kv.dir
}

// Path returns the file backing key.
func (kv *FileKV) Path(key string) string {
	return filepath.Join(kv.dir, key+".json")
}

// Get returns the stored value. ok is false when the key was never written.
func (kv *FileKV) Get(key string) (value []byte, ok bool, err error) {
	if !validKey.MatchString(key) {
		return nil, false, fmt.Errorf("invalid key %q", key)
	}
	data, err := os.ReadFile(kv.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Set replaces the value stored under key.
func (kv *FileKV) Set(key string, value []byte) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	if err := os.MkdirAll(kv.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(kv.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, kv.Path(key)); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
