package mutex

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetMutexReturnsSameInstancePerKey(t *testing.T) {
	rm := New(time.Minute)
	defer rm.Stop()

	first := rm.GetMutex("key1")
	second := rm.GetMutex("key1")
	other := rm.GetMutex("key2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, rm.Size())
}

func TestGetMutexConcurrent(t *testing.T) {
	rm := New(time.Minute)
	defer rm.Stop()

	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu := rm.GetMutex("shared")
			mu.Lock()
			counter++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 1, rm.Size())
}

func TestCleanupRemovesIdleMutexes(t *testing.T) {
	rm := New(20 * time.Millisecond)
	defer rm.Stop()

	rm.GetMutex("idle")
	assert.Equal(t, 1, rm.Size())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, rm.Size())
}

func TestCleanupSkipsHeldMutexes(t *testing.T) {
	rm := New(20 * time.Millisecond)
	defer rm.Stop()

	mu := rm.GetMutex("held")
	mu.Lock()
	defer mu.Unlock()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, rm.Size())
}
