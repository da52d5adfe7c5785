package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/AnshRaj112/goalledger-backend/internal/ledger"
	"github.com/AnshRaj112/goalledger-backend/internal/models"
)

// DefaultTimeout bounds one unit of work, including the wait for the gate.
const DefaultTimeout = 5 * time.Second

// gateWeight is the total weight of the gate. A writer takes all of it, a reader takes 1.
const gateWeight = 1 << 16

// Store owns the persisted document. Every mutation is one load -> apply -> save
// unit of work under an exclusive gate; reads share the gate.
type Store struct {
	backend Backend
	gate    *semaphore.Weighted
	timeout time.Duration
}

// Open wraps backend and makes sure a readable document exists. A backend that has
// never been written gets an empty document. A document that exists but cannot be
// loaded or decoded fails Open, so a corrupt store is never mistaken for an empty one.
func Open(ctx context.Context, backend Backend, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s := &Store{
		backend: backend,
		gate:    semaphore.NewWeighted(gateWeight),
		timeout: timeout,
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := backend.Load(ctx)
	if errors.Is(err, ErrNoDocument) {
		if err := s.save(ctx, models.NewDocument()); err != nil {
			return nil, err
		}
		log.Printf("✅ Initialized empty ledger document (%s)", backend.Name())
		return s, nil
	}
	if err != nil {
		return nil, ledger.Persistence("load document", err)
	}
	if _, err := decode(raw); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Backend returns the name of the storage driver.
func (s *Store) Backend() string {
	return s.backend.Name()
}

// Mutate runs fn as one indivisible unit of work. fn receives a freshly loaded
// document it may modify; the document is persisted only if fn returns nil.
// Errors from fn are returned unchanged.
func Mutate[T any](ctx context.Context, s *Store, fn func(doc *models.Document) (T, error)) (T, error) {
	var zero T
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.gate.Acquire(ctx, gateWeight); err != nil {
		return zero, ledger.Persistence("acquire write gate", err)
	}
	defer s.gate.Release(gateWeight)

	doc, err := s.load(ctx)
	if err != nil {
		return zero, err
	}
	result, err := fn(doc)
	if err != nil {
		return zero, err
	}
	if err := s.save(ctx, doc); err != nil {
		return zero, err
	}
	return result, nil
}

// Read runs fn against a consistent snapshot. fn must not retain doc.
func Read[T any](ctx context.Context, s *Store, fn func(doc *models.Document) (T, error)) (T, error) {
	var zero T
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.gate.Acquire(ctx, 1); err != nil {
		return zero, ledger.Persistence("acquire read gate", err)
	}
	defer s.gate.Release(1)

	doc, err := s.load(ctx)
	if err != nil {
		return zero, err
	}
	return fn(doc)
}

// Snapshot returns a full copy of the current document.
func (s *Store) Snapshot(ctx context.Context) (*models.Document, error) {
	return Read(ctx, s, func(doc *models.Document) (*models.Document, error) {
		return doc, nil
	})
}

func (s *Store) load(ctx context.Context) (*models.Document, error) {
	raw, err := s.backend.Load(ctx)
	if err != nil {
		return nil, ledger.Persistence("load document", err)
	}
	return decode(raw)
}

func (s *Store) save(ctx context.Context, doc *models.Document) error {
	raw, err := Encode(doc)
	if err != nil {
		return ledger.Persistence("encode document", err)
	}
	if err := ctx.Err(); err != nil {
		return ledger.Persistence("save document", err)
	}
	if err := s.backend.Save(ctx, raw); err != nil {
		return ledger.Persistence("save document", err)
	}
	return nil
}

// Encode renders doc in the on-disk format: indented JSON with users, goals and activities.
func Encode(doc *models.Document) ([]byte, error) {
	doc.Normalize()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(raw []byte) (*models.Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ledger.Persistence("decode document", errors.New("document is empty"))
	}
	doc := models.NewDocument()
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(doc); err != nil {
		return nil, ledger.Persistence("decode document", fmt.Errorf("corrupt document: %w", err))
	}
	doc.Normalize()
	return doc, nil
}
