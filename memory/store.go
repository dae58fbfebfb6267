// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memory

import (
	"cmp"
	"iter"
	"slices"
)

const (
	DEFAULT_BUCKETS = 256 // Bucket count used when none is configured.
)

// cell is a single stored byte in a bucket chain. A chain holds at most one
// cell per address.
type cell struct {
	address int32
	value   uint8
	next    *cell
}

// Store is a sparse byte addressable memory.
type Store struct {
	bucket []*cell
	size   int
}

// NewStore creates a store with a fixed number of bucket chains.
func NewStore(buckets uint) (store *Store, err error) {
	if buckets == 0 {
		err = ErrAllocation
		return
	}

	store = &Store{
		bucket: make([]*cell, buckets),
	}

	return
}

// hash maps an address to its bucket index.
// Negative addresses share the bucket of their magnitude.
func (store *Store) hash(address int32) int {
	magnitude := uint32(address)
	if address < 0 {
		magnitude = -magnitude
	}
	return int(magnitude % uint32(len(store.bucket)))
}

// find returns the entry holding address, or nil.
func (store *Store) find(address int32) *cell {
	for entry := store.bucket[store.hash(address)]; entry != nil; entry = entry.next {
		if entry.address == address {
			return entry
		}
	}
	return nil
}

// Put stores a byte, replacing any prior value at the same address.
func (store *Store) Put(address int32, value uint8) {
	entry := store.find(address)
	if entry != nil {
		entry.value = value
		return
	}

	index := store.hash(address)
	store.bucket[index] = &cell{
		address: address,
		value:   value,
		next:    store.bucket[index],
	}
	store.size++
}

// Get returns the byte at address, or zero if it was never written.
func (store *Store) Get(address int32) (value uint8) {
	entry := store.find(address)
	if entry != nil {
		value = entry.value
	}
	return
}

// Size is the number of distinct addresses stored.
func (store *Store) Size() int {
	return store.size
}

// Buckets is the fixed bucket count.
func (store *Store) Buckets() uint {
	return uint(len(store.bucket))
}

// Reset drops every entry, keeping the bucket count.
func (store *Store) Reset() {
	clear(store.bucket)
	store.size = 0
}

// Chain iterates a single bucket in chain order, most recently added first.
func (store *Store) Chain(index uint) iter.Seq2[int32, uint8] {
	return func(yield func(address int32, value uint8) bool) {
		if index >= uint(len(store.bucket)) {
			return
		}
		for entry := store.bucket[index]; entry != nil; entry = entry.next {
			if !yield(entry.address, entry.value) {
				return
			}
		}
	}
}

// All iterates every stored byte in ascending address order.
func (store *Store) All() iter.Seq2[int32, uint8] {
	entries := make([]*cell, 0, store.size)
	for _, head := range store.bucket {
		for entry := head; entry != nil; entry = entry.next {
			entries = append(entries, entry)
		}
	}
	slices.SortFunc(entries, func(a, b *cell) int {
		return cmp.Compare(a.address, b.address)
	})

	return func(yield func(address int32, value uint8) bool) {
		for _, entry := range entries {
			if !yield(entry.address, entry.value) {
				return
			}
		}
	}
}
