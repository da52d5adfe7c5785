package store

import (
	"context"
	"sync"
)

// MemoryBackend holds the document in process memory. Used for tests and
// throwaway runs.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
	// FailLoad and FailSave, when set, are returned instead of touching data.
	FailLoad error
	FailSave error
}

func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{} }

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) Load(ctx context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailLoad != nil {
		return nil, b.FailLoad
	}
	if b.data == nil {
		return nil, ErrNoDocument
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

func (b *MemoryBackend) Save(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailSave != nil {
		return b.FailSave
	}
	b.data = append([]byte(nil), data...)
	return nil
}

// SetRaw replaces the stored bytes directly.
func (b *MemoryBackend) SetRaw(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
}

func (b *MemoryBackend) Close() error { return nil }
