// Package util contains small shared helpers.
package util

import (
	"slices"
	"sync"
)

// KeyedMutex provides one mutex per string key, giving the single-writer-per-key
// discipline the ledgers need: concurrent deductions against the same material
// serialize, while different keys proceed in parallel.
//
// Mutexes are created on first use and kept for the process lifetime; the key
// space is bounded by the number of materials and orders.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty keyed mutex set.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

func (k *KeyedMutex) mutex(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}

	return m
}

// Lock acquires the mutex for one key and returns its unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	m := k.mutex(key)
	m.Lock()

	return m.Unlock
}

// LockAll acquires the mutexes for a set of keys and returns a single unlock
// function. Keys are deduplicated and locked in sorted order so that two
// overlapping multi-key acquisitions can never deadlock.
func (k *KeyedMutex) LockAll(keys []string) func() {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, key := range sorted {
		m := k.mutex(key)
		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
