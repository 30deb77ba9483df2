// Package cache is the on-disk directory cache sitting between the UI and
// the OPML fetcher. Entries are keyed by URL and fresh for the lifetime of a
// run unless explicitly invalidated.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mwren/radiola/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketListings = []byte("listings")

// fetcher abstracts the OPML fetch/parse adapter (consumer-defined interface)
type fetcher interface {
	Fetch(ctx context.Context, url string) (domain.Listing, error)
}

// entry is the persisted form of one cached listing
type entry struct {
	Listing   domain.Listing `json:"listing"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// Store caches listings in BoltDB with an in-memory hot layer. URLs fetched
// during the current run stay valid until Invalidate; persisted entries from
// earlier runs are reused while younger than maxAge.
type Store struct {
	db      *bolt.DB
	fetcher fetcher
	maxAge  time.Duration
	logger  *slog.Logger

	mu  sync.RWMutex
	mem map[string]domain.Listing // listings validated this run
}

// NewStore opens (or creates) the cache database under dir. An empty dir
// runs memory-only, which is what tests and cold-start fallbacks use.
func NewStore(dir string, f fetcher, maxAge time.Duration, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		fetcher: f,
		maxAge:  maxAge,
		logger:  logger,
		mem:     make(map[string]domain.Listing),
	}
	if dir == "" {
		return s, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(filepath.Join(dir, "directory.db"), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketListings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	s.db = db
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the cached listing for url, fetching on miss or staleness. A
// failed refetch leaves any prior persisted entry untouched, so the next Get
// can still fall back to stale data after an Invalidate-triggered miss.
func (s *Store) Get(ctx context.Context, url string) (domain.Listing, error) {
	s.mu.RLock()
	listing, ok := s.mem[url]
	s.mu.RUnlock()
	if ok {
		return listing, nil
	}

	if listing, ok := s.loadPersisted(url); ok {
		s.mu.Lock()
		s.mem[url] = listing
		s.mu.Unlock()
		return listing, nil
	}

	listing, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.mem[url] = listing
	s.mu.Unlock()
	if err := s.persist(url, listing); err != nil {
		// Persistence is best-effort; the in-memory copy is authoritative.
		s.logger.Warn("failed to persist listing", "url", url, "error", err)
	}
	return listing, nil
}

// Refresh refetches url unconditionally, replacing the entry only on
// success. On failure the prior entry stays available: stale data beats no
// data when a manual refresh goes wrong.
func (s *Store) Refresh(ctx context.Context, url string) (domain.Listing, error) {
	listing, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.mem[url] = listing
	s.mu.Unlock()
	if err := s.persist(url, listing); err != nil {
		s.logger.Warn("failed to persist listing", "url", url, "error", err)
	}
	return listing, nil
}

// Invalidate forces the next Get for url to refetch
func (s *Store) Invalidate(url string) {
	s.mu.Lock()
	delete(s.mem, url)
	s.mu.Unlock()

	if s.db == nil {
		return
	}
	s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketListings).Delete([]byte(url))
	})
}

func (s *Store) loadPersisted(url string) (domain.Listing, bool) {
	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketListings).Get([]byte(url)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		s.logger.Warn("dropping unreadable cache entry", "url", url, "error", err)
		return nil, false
	}
	if s.maxAge > 0 && time.Since(e.FetchedAt) > s.maxAge {
		return nil, false
	}
	return e.Listing, true
}

// persist replaces the entry for url atomically inside one bolt transaction;
// there is never a partially updated entry.
func (s *Store) persist(url string, listing domain.Listing) error {
	if s.db == nil {
		return nil
	}
	data, err := json.Marshal(entry{Listing: listing, FetchedAt: time.Now()})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketListings).Put([]byte(url), data)
	})
}
