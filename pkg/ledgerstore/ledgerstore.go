package ledgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	// ErrEmptyKey is returned when a record is appended without an owning key.
	ErrEmptyKey = errors.New("ledgerstore: empty key")
)

// Store is an append-only collection of records grouped by key, persisted
// as a single JSON snapshot. Records are never edited or removed;
// corrections are new appended records. Every append rewrites the whole
// snapshot via a temp file and rename, so readers observe either the old
// or the fully written new file.
type Store[T any] struct {
	path    string
	tracer  trace.Tracer
	logger  *zap.Logger
	migrate func(T) T

	mu      sync.RWMutex
	records map[string][]T
}

// Option configures a Store during Open.
type Option[T any] func(*Store[T])

// WithMigrate registers a per-record repair function applied once at load
// time. The repaired records are not written back to disk until the next
// append.
func WithMigrate[T any](fn func(T) T) Option[T] {
	return func(s *Store[T]) { s.migrate = fn }
}

// WithLogger sets the store logger.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(s *Store[T]) { s.logger = logger }
}

// Open loads the snapshot at path, creating an empty one if it does not
// exist. A snapshot that cannot be parsed is logged and replaced by an
// empty in-memory store rather than failing startup.
func Open[T any](path string, opts ...Option[T]) (*Store[T], error) {
	s := &Store[T]{
		path:    path,
		tracer:  otel.Tracer("circdash/ledgerstore"),
		logger:  zap.NewNop(),
		records: make(map[string][]T),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		if err := s.save(context.Background()); err != nil {
			return nil, fmt.Errorf("initialize snapshot: %w", err)
		}
		return s, nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		s.logger.Error("corrupt ledger snapshot, starting empty",
			zap.String("path", path), zap.Error(err))
		s.records = make(map[string][]T)
		return s, nil
	}

	if s.migrate != nil {
		for key, recs := range s.records {
			for i, rec := range recs {
				recs[i] = s.migrate(rec)
			}
			s.records[key] = recs
		}
	}

	return s, nil
}

// Append adds a record to the key's sequence, preserving insertion order,
// and persists the entire store.
func (s *Store[T]) Append(ctx context.Context, key string, rec T) error {
	ctx, span := s.tracer.Start(ctx, "ledgerstore.append",
		trace.WithAttributes(
			attribute.String("store.path", s.path),
			attribute.String("record.key", key),
		),
	)
	defer span.End()

	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = append(s.records[key], rec)
	if err := s.save(ctx); err != nil {
		// Roll the in-memory append back so a failed persist does not
		// leave the cache ahead of disk on the next read.
		seq := s.records[key]
		s.records[key] = seq[:len(seq)-1]
		return fmt.Errorf("persist snapshot: %w", err)
	}

	return nil
}

// History returns a copy of the sequence for one key. Unknown keys yield
// an empty sequence, never an error.
func (s *Store[T]) History(key string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq := s.records[key]
	out := make([]T, len(seq))
	copy(out, seq)
	return out
}

// All flattens every sequence into one slice sorted by the supplied
// timestamp accessor, most recent first.
func (s *Store[T]) All(timestamp func(T) time.Time) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for _, seq := range s.records {
		out = append(out, seq...)
	}
	sort.Slice(out, func(i, j int) bool {
		return timestamp(out[i]).After(timestamp(out[j]))
	})
	return out
}

// Len reports the total number of records across all keys.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, seq := range s.records {
		n += len(seq)
	}
	return n
}

// save serializes the whole store and atomically replaces the snapshot.
// Callers must hold the write lock (or have exclusive access during Open).
func (s *Store[T]) save(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "ledgerstore.save",
		trace.WithAttributes(
			attribute.String("store.path", s.path),
			attribute.Int("key.count", len(s.records)),
		),
	)
	defer span.End()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}
