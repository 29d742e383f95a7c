package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/aami-bangali/internal/catalog"
	"github.com/Lixing-Zhang/aami-bangali/internal/storefront"
)

// Store keeps one storefront per visitor in memory. Nothing is persisted;
// a restart starts every visitor with an empty cart.
type Store struct {
	mu      sync.Mutex
	menu    *catalog.Menu
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry
}

type entry struct {
	sf       *storefront.Storefront
	lastSeen time.Time
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
// A non-positive ttl disables expiry.
func NewStore(menu *catalog.Menu, ttl time.Duration) *Store {
	return &Store{
		menu:    menu,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Lookup returns the storefront for a well-formed, known session id and
// refreshes its last-seen time.
func (s *Store) Lookup(id string) (*storefront.Storefront, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.sf, true
}

// Draft returns a new session id and a fresh storefront without storing
// them. Save makes the session live.
func (s *Store) Draft() (string, *storefront.Storefront) {
	return uuid.NewString(), storefront.New(s.menu)
}

// Save stores sf under id.
func (s *Store) Save(id string, sf *storefront.Storefront) {
	s.mu.Lock()
	s.entries[id] = &entry{sf: sf, lastSeen: s.now()}
	s.mu.Unlock()
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were removed.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration, log *slog.Logger) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Debug("expired sessions removed", "removed", n, "remaining", s.Len())
			}
		}
	}
}
