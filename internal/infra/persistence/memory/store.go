// Package memory contains the in-memory implementation of the persistence
// layer: a mutex-guarded key-value store with snapshot-based transactions.
// It is the default backend when Postgres is not configured and gives tests
// a fresh, isolated instance per case.
package memory

import (
	"maps"
	"sync"

	"pharmachain/internal/domain/entity"
)

// Store holds the whole ledger state. Entities are stored by value and only
// ever replaced wholesale, never mutated in place, so snapshots are plain
// map copies.
type Store struct {
	mu sync.RWMutex

	participants map[entity.Identity]entity.Role
	owner        entity.Identity
	supplier     entity.Identity
	materials    map[string]entity.RawMaterial
	batches      map[string]entity.Batch
	orders       map[string]entity.Order
	history      map[string][]entity.OrderStatusChange
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		participants: make(map[entity.Identity]entity.Role),
		materials:    make(map[string]entity.RawMaterial),
		batches:      make(map[string]entity.Batch),
		orders:       make(map[string]entity.Order),
		history:      make(map[string][]entity.OrderStatusChange),
	}
}

type snapshot struct {
	participants map[entity.Identity]entity.Role
	owner        entity.Identity
	supplier     entity.Identity
	materials    map[string]entity.RawMaterial
	batches      map[string]entity.Batch
	orders       map[string]entity.Order
	history      map[string][]entity.OrderStatusChange
}

// takeSnapshot copies the store state. Callers must hold the write lock.
func (s *Store) takeSnapshot() snapshot {
	return snapshot{
		participants: maps.Clone(s.participants),
		owner:        s.owner,
		supplier:     s.supplier,
		materials:    maps.Clone(s.materials),
		batches:      maps.Clone(s.batches),
		orders:       maps.Clone(s.orders),
		history:      maps.Clone(s.history),
	}
}

// restore puts a snapshot back. Callers must hold the write lock.
func (s *Store) restore(snap snapshot) {
	s.participants = snap.participants
	s.owner = snap.owner
	s.supplier = snap.supplier
	s.materials = snap.materials
	s.batches = snap.batches
	s.orders = snap.orders
	s.history = snap.history
}

// read runs fn under the read lock unless the caller is already inside a
// transaction (which holds the write lock).
func (s *Store) read(inTx bool, fn func()) {
	if !inTx {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

// write runs fn under the write lock unless the caller is already inside a
// transaction.
func (s *Store) write(inTx bool, fn func()) {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}
