package wizard

import (
	"sync"
	"time"

	"catering/internal/builder"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// draft is one visitor's builder. The builder is not goroutine safe, so
// every access goes through mu.
type draft struct {
	mu sync.Mutex
	b  *builder.Builder
}

// Store keeps drafts in memory, dropping the least recently used past
// capacity and any draft idle for longer than ttl.
type Store struct {
	cache *expirable.LRU[string, *draft]
}

func NewStore(capacity int, ttl time.Duration) *Store {
	return &Store{cache: expirable.NewLRU[string, *draft](capacity, nil, ttl)}
}

func (s *Store) Create(b *builder.Builder) (string, *draft) {
	id := uuid.New().String()
	d := &draft{b: b}
	s.cache.Add(id, d)
	return id, d
}

// Get returns a live draft and restarts its idle timer.
func (s *Store) Get(id string) (*draft, bool) {
	d, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	s.cache.Add(id, d)
	return d, true
}

func (s *Store) Remove(id string) {
	s.cache.Remove(id)
}

func (s *Store) Len() int {
	return s.cache.Len()
}
