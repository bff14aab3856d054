package session

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore keeps sessions in an expirable LRU. Idle sessions expire after ttl.
type MemoryStore struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, map[string]string]
}

// NewMemoryStore creates a MemoryStore holding at most maxEntries sessions.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	return &MemoryStore{
		sessions: expirable.NewLRU[string, map[string]string](maxEntries, nil, ttl),
	}
}

func (s *MemoryStore) Get(ctx context.Context, sid, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.sessions.Get(sid)
	if !ok {
		return "", false, nil
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, sid, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.sessions.Get(sid)
	next := make(map[string]string, len(values)+1)
	if ok {
		for k, v := range values {
			next[k] = v
		}
	}
	next[key] = value
	s.sessions.Add(sid, next)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sid string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.sessions.Get(sid)
	if !ok {
		return nil
	}
	next := make(map[string]string, len(values))
	for k, v := range values {
		next[k] = v
	}
	for _, k := range keys {
		delete(next, k)
	}
	if len(next) == 0 {
		s.sessions.Remove(sid)
		return nil
	}
	s.sessions.Add(sid, next)
	return nil
}
