package store

import (
	"context"
	"errors"
)

// ErrNoDocument is returned by Backend.Load when nothing has been persisted yet.
var ErrNoDocument = errors.New("no document")

// ErrLocked is returned when another process holds the document.
var ErrLocked = errors.New("document is locked by another process")

// Backend persists the encoded document as a single opaque value.
type Backend interface {
	Name() string
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}
