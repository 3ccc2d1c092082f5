package mutex

import (
	"sync"
	"time"
)

// RequestMutex provides per-key mutex locking so concurrent requests for
// the same address collapse into a single upstream fetch.
type RequestMutex struct {
	mutexes    map[string]*mutexEntry
	mapMutex   sync.RWMutex
	cleanupTTL time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// mutexEntry holds a mutex and its last access time for cleanup
type mutexEntry struct {
	mutex      *sync.Mutex
	lastAccess time.Time
}

// New creates a new RequestMutex instance with automatic cleanup
func New(cleanupTTL time.Duration) *RequestMutex {
	rm := &RequestMutex{
		mutexes:    make(map[string]*mutexEntry),
		cleanupTTL: cleanupTTL,
		stopCh:     make(chan struct{}),
	}

	go rm.cleanup()

	return rm
}

// GetMutex returns a mutex for the given key, creating one if it doesn't exist
func (rm *RequestMutex) GetMutex(key string) *sync.Mutex {
	rm.mapMutex.RLock()
	entry, exists := rm.mutexes[key]
	if exists {
		entry.lastAccess = time.Now()
		rm.mapMutex.RUnlock()
		return entry.mutex
	}
	rm.mapMutex.RUnlock()

	rm.mapMutex.Lock()
	defer rm.mapMutex.Unlock()

	// Double-check in case another goroutine created it
	if entry, exists := rm.mutexes[key]; exists {
		entry.lastAccess = time.Now()
		return entry.mutex
	}

	newEntry := &mutexEntry{
		mutex:      &sync.Mutex{},
		lastAccess: time.Now(),
	}
	rm.mutexes[key] = newEntry

	return newEntry.mutex
}

// Size returns the number of mutexes currently stored
func (rm *RequestMutex) Size() int {
	rm.mapMutex.RLock()
	defer rm.mapMutex.RUnlock()
	return len(rm.mutexes)
}

// cleanup runs periodically to remove unused mutexes
func (rm *RequestMutex) cleanup() {
	ticker := time.NewTicker(rm.cleanupTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rm.removeUnused()
		case <-rm.stopCh:
			return
		}
	}
}

func (rm *RequestMutex) removeUnused() {
	rm.mapMutex.Lock()
	defer rm.mapMutex.Unlock()

	now := time.Now()
	for key, entry := range rm.mutexes {
		if now.Sub(entry.lastAccess) > rm.cleanupTTL {
			// Only remove mutexes that are not currently held
			if entry.mutex.TryLock() {
				entry.mutex.Unlock()
				delete(rm.mutexes, key)
			}
		}
	}
}

// Stop stops the cleanup goroutine
func (rm *RequestMutex) Stop() {
	rm.stopOnce.Do(func() {
		close(rm.stopCh)
	})
}
