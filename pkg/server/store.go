package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/splitgrid/pkg/cache"
	"github.com/matzehuels/splitgrid/pkg/grid"
)

// entry is one live grid. mu serializes every read and drag of g.
type entry struct {
	mu      sync.Mutex
	id      string
	g       *grid.Grid
	scope   string
	keyer   cache.Keyer
	created time.Time
	touched time.Time
}

// Store holds live grids in memory.
type Store struct {
	mu    sync.RWMutex
	grids map[string]*entry
	ttl   time.Duration
	now   func() time.Time

	// onRemove is called with the cache scope of every grid removed by
	// Delete or Cleanup.
	onRemove func(scope string)
}

// NewStore creates an empty store. Grids idle for longer than ttl are
// considered expired; a ttl of zero or less keeps them until deleted.
// [Config] maps a zero TTL to [DefaultTTL] before calling NewStore.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		grids: make(map[string]*entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create stores g under a fresh identifier.
func (s *Store) Create(g *grid.Grid) *entry {
	now := s.now()
	e := &entry{
		id:      uuid.NewString(),
		g:       g,
		created: now,
		touched: now,
	}
	e.scope = "grid:" + e.id + ":"
	e.keyer = cache.NewScopedKeyer(nil, e.scope)

	s.mu.Lock()
	s.grids[e.id] = e
	s.mu.Unlock()
	return e
}

// Get returns the live grid with the given id. Expired grids are not
// returned. The caller must hold e.mu while using e.g.
func (s *Store) Get(id string) (*entry, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	s.mu.RLock()
	e, ok := s.grids[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if s.expired(e) {
		return nil, false
	}
	e.touched = s.now()
	return e, true
}

// Delete removes a grid and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	e, ok := s.grids[id]
	if ok {
		delete(s.grids, id)
	}
	s.mu.Unlock()
	if ok {
		s.removed(e.scope)
	}
	return ok
}

// Cleanup evicts expired grids and returns how many were removed.
func (s *Store) Cleanup() int {
	var scopes []string
	s.mu.Lock()
	for id, e := range s.grids {
		e.mu.Lock()
		if s.expired(e) {
			delete(s.grids, id)
			scopes = append(scopes, e.scope)
		}
		e.mu.Unlock()
	}
	s.mu.Unlock()

	for _, scope := range scopes {
		s.removed(scope)
	}
	return len(scopes)
}

func (s *Store) removed(scope string) {
	if s.onRemove != nil {
		s.onRemove(scope)
	}
}

// Len returns the number of stored grids, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.grids)
}

// expired must be called with e.mu held.
func (s *Store) expired(e *entry) bool {
	return s.ttl > 0 && s.now().Sub(e.touched) > s.ttl
}
