package blob

import (
	"context"
	"sync"
)

// MemoryStore is an in-process blob store used by tests and as a scratch
// backend. Every Set notifies all watchers, including watchers registered by
// the writing context; refreshing from one's own write is harmless.
type MemoryStore struct {
	mu       sync.Mutex
	values   map[string][]byte
	watchers []chan string
}

// NewMemoryStore creates an empty in-process blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get fetches the value stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, found := s.values[key]
	if !found {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set overwrites the value stored under key and notifies watchers.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	for _, w := range s.watchers {
		select {
		case w <- key:
		default: // watcher is slow, it will catch up on its next reload
		}
	}
	return nil
}

// Watch registers a change channel. The channel closes when ctx is canceled.
func (s *MemoryStore) Watch(ctx context.Context) (<-chan string, error) {
	keys := make(chan string, 16)
	s.mu.Lock()
	s.watchers = append(s.watchers, keys)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		for i, w := range s.watchers {
			if w == keys {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		close(keys)
	}()
	return keys, nil
}

// Close is a no-op for the in-process store.
func (s *MemoryStore) Close() error {
	return nil
}
