// Package quote hands out sequential quote numbers.
//
// The counter is a small JSON file. In-process callers are serialised with a
// mutex and other processes with an advisory lockfile; every increment is
// persisted with a temp file and rename so a crash never leaves a torn file.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/oklog/ulid/v2"

	"github.com/rshade/solarsizer/internal/logging"
)

// StoreVersion is the schema version of the counter file.
const StoreVersion = 1

var (
	// ErrStoreCorrupted indicates the counter file exists but cannot be trusted.
	ErrStoreCorrupted = errors.New("quote store corrupted")

	// ErrLockTimeout indicates another process held the lock for too long.
	ErrLockTimeout = errors.New("timed out waiting for quote store lock")
)

// Ticket is one issued quote number.
type Ticket struct {
	ID       string    `json:"id"`
	Number   int       `json:"number"`
	IssuedAt time.Time `json:"issued_at"`
}

// Date formats the issue date the way it is printed on quotes (dd/mm/yyyy).
func (t Ticket) Date() string {
	return t.IssuedAt.Format("02/01/2006")
}

type storeData struct {
	Version      int       `json:"version"`
	LastNumber   int       `json:"last_number"`
	LastID       string    `json:"last_id,omitempty"`
	LastIssuedAt time.Time `json:"last_issued_at,omitzero"`
}

// Store is a persistent, monotonically increasing quote counter.
type Store struct {
	mu    sync.Mutex
	path  string
	clock clockwork.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp tickets.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// NewStore returns a store backed by path. The file is created on first use.
func NewStore(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("quote store path is required")
	}
	s := &Store{path: path, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the counter file location.
func (s *Store) Path() string {
	return s.path
}

// Next increments the counter, persists it and returns the new ticket.
func (s *Store) Next(ctx context.Context) (Ticket, error) {
	if err := ctx.Err(); err != nil {
		return Ticket{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquireFileLock(ctx)
	if err != nil {
		return Ticket{}, fmt.Errorf("acquiring file lock: %w", err)
	}
	defer unlock()

	data, err := s.read()
	if err != nil {
		return Ticket{}, err
	}

	now := s.clock.Now()
	id, err := ulid.New(ulid.Timestamp(now), ulid.DefaultEntropy())
	if err != nil {
		return Ticket{}, fmt.Errorf("generating quote id: %w", err)
	}

	data.LastNumber++
	data.LastID = id.String()
	data.LastIssuedAt = now
	if err = s.write(data); err != nil {
		return Ticket{}, err
	}

	logging.FromContext(ctx).Info().
		Ctx(ctx).
		Str("component", "quote").
		Int("number", data.LastNumber).
		Str("quote_id", data.LastID).
		Msg("quote number issued")

	return Ticket{ID: data.LastID, Number: data.LastNumber, IssuedAt: now}, nil
}

// Seed raises the counter to at least n without issuing a ticket and returns
// the resulting last number. A counter already at or past n is left alone.
func (s *Store) Seed(ctx context.Context, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("seed must not be negative: %d", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquireFileLock(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquiring file lock: %w", err)
	}
	defer unlock()

	data, err := s.read()
	if err != nil {
		return 0, err
	}
	if data.LastNumber >= n {
		return data.LastNumber, nil
	}

	data.LastNumber = n
	if err = s.write(data); err != nil {
		return 0, err
	}
	return n, nil
}

// Current returns the last issued number, or zero when none was issued.
func (s *Store) Current() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return 0, err
	}
	return data.LastNumber, nil
}

func (s *Store) read() (storeData, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return storeData{Version: StoreVersion}, nil
	}
	if err != nil {
		return storeData{}, fmt.Errorf("reading quote store: %w", err)
	}

	var data storeData
	if err = json.Unmarshal(raw, &data); err != nil {
		return storeData{}, fmt.Errorf("%w: %w", ErrStoreCorrupted, err)
	}
	if data.Version != StoreVersion {
		return storeData{}, fmt.Errorf("%w: unsupported version %d (expected %d)",
			ErrStoreCorrupted, data.Version, StoreVersion)
	}
	if data.LastNumber < 0 {
		return storeData{}, fmt.Errorf("%w: negative quote number %d", ErrStoreCorrupted, data.LastNumber)
	}
	return data, nil
}

func (s *Store) write(data storeData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling quote store: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating quote store directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err = os.WriteFile(tmpPath, raw, 0o600); err != nil {
		return fmt.Errorf("writing quote store temp file: %w", err)
	}
	if err = os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming quote store temp file: %w", err)
	}
	return nil
}
