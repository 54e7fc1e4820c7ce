// Package lss implements the level-search-structure map used by the
// X-Fast Trie: one hash map per prefix length, indexed 0..w, mapping a
// prefix value to the internal trie node that owns it.
//
// The contract is grounded on the reference implementation's map_wrapper
// (original_source/src/x-fast-trie/x-fast-trie-map-wrapper.h), which adds
// contains/insert/erase on top of an unordered map. Here the hashing is
// supplied by github.com/dolthub/maphash instead of Go's built-in,
// unexported map hash, so the level tables are backed by an explicit,
// swappable hashing dependency rather than the runtime's private one.
package lss

import (
	"iter"

	"github.com/dolthub/maphash"
)

// entry is one slot in a bucket's chain.
type entry[K comparable, V any] struct {
	key  K
	val  V
	next *entry[K, V]
}

// Map is a generic hash map keyed by K, used as one level of a
// level-search-structure. It grows by doubling and rehashing, same as the
// reference's underlying std::unordered_map.
type Map[K comparable, V any] struct {
	hasher  maphash.Hasher[K]
	buckets []*entry[K, V]
	size    int
}

const initialBuckets = 8

// New creates an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		hasher:  maphash.NewHasher[K](),
		buckets: make([]*entry[K, V], initialBuckets),
	}
}

// Len reports the number of entries.
func (m *Map[K, V]) Len() int {
	return m.size
}

func (m *Map[K, V]) bucketFor(key K) int {
	return int(m.hasher.Hash(key) % uint64(len(m.buckets)))
}

// Contains reports whether key is present, matching map_wrapper::contains.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.At(key)
	return ok
}

// At returns the value stored for key, if any.
func (m *Map[K, V]) At(key K) (V, bool) {
	for e := m.buckets[m.bucketFor(key)]; e != nil; e = e.next {
		if e.key == key {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

// Insert stores val under key, overwriting any existing value.
func (m *Map[K, V]) Insert(key K, val V) {
	idx := m.bucketFor(key)
	for e := m.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			e.val = val
			return
		}
	}
	m.buckets[idx] = &entry[K, V]{key: key, val: val, next: m.buckets[idx]}
	m.size++
	if m.size > len(m.buckets)*3/4 {
		m.grow()
	}
}

// Erase removes key, matching map_wrapper::remove. It is a no-op if key is
// absent.
func (m *Map[K, V]) Erase(key K) {
	idx := m.bucketFor(key)
	var prev *entry[K, V]
	for e := m.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			if prev == nil {
				m.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			m.size--
			return
		}
		prev = e
	}
}

func (m *Map[K, V]) grow() {
	old := m.buckets
	m.buckets = make([]*entry[K, V], len(old)*2)
	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			idx := m.bucketFor(e.key)
			e.next = m.buckets[idx]
			m.buckets[idx] = e
			e = next
		}
	}
}

// All iterates every (key, value) pair in unspecified order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, head := range m.buckets {
			for e := head; e != nil; e = e.next {
				if !yield(e.key, e.val) {
					return
				}
			}
		}
	}
}
