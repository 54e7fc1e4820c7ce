package yfasttrie

import (
	"iter"

	"golang.org/x/exp/constraints"

	"github.com/dynaset/yfasttrie/internal/yfast"
)

// Trie is a dynamic ordered set of keys of type K, which must be one of
// Go's unsigned integer types. The bit width of the universe (8, 16, 32,
// or 64) is selected by instantiating Trie with the corresponding type;
// there is no separate runtime width parameter to keep in sync.
type Trie[K constraints.Unsigned] struct {
	engine *yfast.Trie[K]
}

// New creates an empty Trie.
func New[K constraints.Unsigned]() *Trie[K] {
	return &Trie[K]{engine: yfast.New[K]()}
}

// UpperBound returns the maximum representable key for this trie's
// instantiation of K.
func (t *Trie[K]) UpperBound() K {
	return t.engine.UpperBound()
}

// LowerBound returns the minimum representable key, always 0.
func (t *Trie[K]) LowerBound() K {
	return t.engine.LowerBound()
}

// BitLength returns the bit width of K.
func (t *Trie[K]) BitLength() int {
	return t.engine.BitLength()
}

// Size returns the number of keys currently stored.
func (t *Trie[K]) Size() int {
	return t.engine.Size()
}

// Empty reports whether the trie holds no keys.
func (t *Trie[K]) Empty() bool {
	return t.engine.Empty()
}

// Contains reports whether key is present.
func (t *Trie[K]) Contains(key K) bool {
	return t.engine.Contains(key)
}

// Insert adds key to the trie. It is a no-op if key is already present.
func (t *Trie[K]) Insert(key K) {
	t.engine.Insert(key)
}

// Remove deletes key from the trie. It is a no-op if key is absent.
func (t *Trie[K]) Remove(key K) {
	t.engine.Remove(key)
}

// Min returns the smallest key present, if any.
func (t *Trie[K]) Min() (K, bool) {
	return t.engine.Min()
}

// Max returns the largest key present, if any.
func (t *Trie[K]) Max() (K, bool) {
	return t.engine.Max()
}

// Predecessor returns the largest key strictly less than key, if any.
func (t *Trie[K]) Predecessor(key K) (K, bool) {
	return t.engine.Predecessor(key)
}

// Successor returns the smallest key strictly greater than key, if any.
func (t *Trie[K]) Successor(key K) (K, bool) {
	return t.engine.Successor(key)
}

// Keys returns an in-order iterator over every key currently stored. It
// walks from Min() to Max() one successor step at a time; mutating the
// trie during iteration has undefined results.
func (t *Trie[K]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		key, ok := t.engine.Min()
		for ok {
			if !yield(key) {
				return
			}
			key, ok = t.engine.Successor(key)
		}
	}
}
