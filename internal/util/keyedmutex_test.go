package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("material-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyedMutex_LockAllOverlappingSets(t *testing.T) {
	km := NewKeyedMutex()

	counters := map[string]int{}
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		// Overlapping key sets in opposite declaration order must not deadlock.
		keys := []string{"a", "b", "c"}
		if i%2 == 0 {
			keys = []string{"c", "b", "a"}
		}
		go func() {
			defer wg.Done()
			unlock := km.LockAll(keys)
			defer unlock()
			for _, key := range keys {
				counters[key]++
			}
		}()
	}
	wg.Wait()

	for _, key := range []string{"a", "b", "c"} {
		assert.Equal(t, 100, counters[key])
	}
}

func TestKeyedMutex_LockAllDeduplicatesKeys(t *testing.T) {
	km := NewKeyedMutex()

	unlock := km.LockAll([]string{"x", "x", "y"})
	unlock()

	// Re-acquiring after release must succeed.
	unlock = km.Lock("x")
	unlock()
}
