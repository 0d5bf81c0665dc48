package alert

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps alerts in memory with a TTL, for tests and single-node
// deployments without Redis.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]Alert
	now  func() time.Time
}

// NewMemoryStore returns a MemoryStore expiring entries after ttl. A zero
// ttl keeps alerts for one hour.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{ttl: ttl, data: make(map[string]Alert), now: time.Now}
}

// Put inserts or replaces an alert.
func (s *MemoryStore) Put(a Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	s.data[a.ID] = a
	return nil
}

// Get returns the alert with the given id.
func (s *MemoryStore) Get(id string) (Alert, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	a, ok := s.data[id]
	return a, ok, nil
}

// Active returns active alerts sorted newest first.
func (s *MemoryStore) Active(severity Severity) ([]Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	var out []Alert
	for _, a := range s.data {
		if a.Status != StatusActive {
			continue
		}
		if severity != "" && a.Severity != severity {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (s *MemoryStore) expireLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, a := range s.data {
		if a.Timestamp.Before(cutoff) {
			delete(s.data, id)
		}
	}
}
