package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps the document in one JSON file. Saves write a temporary file
// in the same directory and rename it over the old one.
//
// The backend holds an exclusive lock on <path>.lock until Close, so a second
// process (a server, or ledgerctl) cannot open the same document meanwhile.
type FileBackend struct {
	path string
	lock *os.File
}

// NewFileBackend locks path for this process. It fails with ErrLocked, wrapped as
// a persistence error, when another backend already holds the document.
func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	lock, err := lockFile(path + ".lock")
	if err != nil {
		return nil, err
	}
	return &FileBackend{path: path, lock: lock}, nil
}

func (b *FileBackend) Name() string { return "file:" + b.path }

func (b *FileBackend) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoDocument
	}
	return data, err
}

func (b *FileBackend) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, b.path)
}

// Close releases the document lock.
func (b *FileBackend) Close() error {
	if b.lock == nil {
		return nil
	}
	err := unlockFile(b.lock)
	b.lock = nil
	return err
}
