package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rentfolio/backend/pkg/logger"
)

// LocalStore keeps files under a private directory root on a local or network
// filesystem. Relative paths are cleaned and joined below the root; anything
// escaping it is rejected before touching the disk.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &Error{Op: "init", Path: root, Err: err}
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Put(_ context.Context, path string, data []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return &Error{Op: "put", Path: path, Err: err}
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		logger.Error("local_store_put_failed", err, map[string]interface{}{
			"path": path,
			"size": len(data),
		})
		return &Error{Op: "put", Path: path, Err: err}
	}
	return nil
}

func (s *LocalStore) Get(_ context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		logger.Error("local_store_get_failed", err, map[string]interface{}{
			"path": path,
		})
		return nil, &Error{Op: "get", Path: path, Err: err}
	}
	return data, nil
}

func (s *LocalStore) Exists(_ context.Context, path string) (bool, error) {
	full, err := s.resolve(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &Error{Op: "stat", Path: path, Err: err}
	}
	return true, nil
}

func (s *LocalStore) Delete(_ context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		logger.Error("local_store_delete_failed", err, map[string]interface{}{
			"path": path,
		})
		return &Error{Op: "delete", Path: path, Err: err}
	}
	return nil
}

func (s *LocalStore) MakeDirectory(_ context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, 0o755); err != nil {
		return &Error{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

func (s *LocalStore) resolve(path string) (string, error) {
	cleaned := filepath.Clean("/" + filepath.FromSlash(path))
	full := filepath.Join(s.root, cleaned)
	if full == s.root || !filepath.IsLocal(cleaned[1:]) {
		return "", &Error{Op: "resolve", Path: path, Err: errors.New("path escapes storage root")}
	}
	return full, nil
}
