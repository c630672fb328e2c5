package payments

import (
	"sync"
	"time"
)

// defaultCleanupInterval is how often expired event IDs are swept.
const defaultCleanupInterval = time.Hour

// MemoryEventStore keeps the IDs of recently processed webhook events so
// fast redeliveries can be skipped without touching the database. It is
// best-effort: entries expire and do not survive a restart, the enrollment
// upserts remain the correctness mechanism.
type MemoryEventStore struct {
	events map[string]time.Time
	mutex  sync.RWMutex
	ttl    time.Duration
	stop   chan struct{}
}

// NewMemoryEventStore creates a new in-memory event store and starts its
// expiry sweep. Call Close to stop the sweep goroutine.
func NewMemoryEventStore(ttl time.Duration) *MemoryEventStore {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	store := &MemoryEventStore{
		events: make(map[string]time.Time),
		ttl:    ttl,
		stop:   make(chan struct{}),
	}

	go store.cleanup(defaultCleanupInterval)

	return store
}

// EventExists checks if an event has already been processed
func (m *MemoryEventStore) EventExists(eventID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, exists := m.events[eventID]
	return exists
}

// MarkProcessed marks an event as processed
func (m *MemoryEventStore) MarkProcessed(eventID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.events[eventID] = time.Now()
	return nil
}

// Close stops the expiry sweep goroutine.
func (m *MemoryEventStore) Close() {
	close(m.stop)
}

// cleanup removes expired events periodically until Close is called.
func (m *MemoryEventStore) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.removeExpired(time.Now())
		case <-m.stop:
			return
		}
	}
}

// removeExpired drops every event older than the TTL relative to now.
func (m *MemoryEventStore) removeExpired(now time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for eventID, timestamp := range m.events {
		if now.Sub(timestamp) > m.ttl {
			delete(m.events, eventID)
		}
	}
}

// Size returns the number of stored events (for monitoring/debugging)
func (m *MemoryEventStore) Size() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.events)
}
