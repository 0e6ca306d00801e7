package storage

import (
	"context"
	"fmt"
)

// Store is the low-level byte store every service writes through. Paths are
// relative, slash-separated and scoped to a private root that is never exposed
// through a public URL. Implementations return *Error on underlying failures;
// callers surface those as-is, with no retry.
type Store interface {
	Put(ctx context.Context, path string, data []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	MakeDirectory(ctx context.Context, path string) error
}

// Error wraps a failed store operation. The wrapped error is for logs only;
// handlers must not echo it to clients.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
