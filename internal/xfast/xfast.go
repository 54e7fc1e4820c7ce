// Package xfast implements an X-Fast Trie: an ordered set over a bounded
// unsigned integer universe supporting O(log w) predecessor/successor
// and O(w) insert and remove, where w is the bit width of the key type.
//
// This is a direct generalization of the reference implementation
// (original_source/src/x-fast-trie/x-fast-trie.h) to Go generics: the
// level-search-structure is internal/lss.Map per prefix length, the
// tagged left/right child pointers are internal/childptr.Ptr, and the
// binary-search-for-longest-matching-prefix, closest-leaf distance
// comparison, and insert/remove skip-link maintenance all follow the
// reference's algorithm and exact conditions.
package xfast

import (
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/dynaset/yfasttrie/internal/childptr"
	"github.com/dynaset/yfasttrie/internal/lss"
)

// Node is a node of the trie: either an internal node keyed by a prefix,
// or a leaf keyed by a full key. Leaves are additionally threaded into a
// sorted doubly linked list via left/right; internal nodes use left/right
// for real children or, when a subtree does not exist, a skip link to
// the extreme leaf on that side.
type Node[K constraints.Unsigned] struct {
	key   K
	left  childptr.Ptr[Node[K]]
	right childptr.Ptr[Node[K]]
}

// Key returns the node's key (a full key for a leaf, a prefix otherwise).
func (n *Node[K]) Key() K {
	return n.key
}

// Left returns the node's left child, or the leaf at the left end of its
// subtree's skip link, or nil.
func (n *Node[K]) Left() *Node[K] {
	return n.left.Target()
}

// Right returns the node's right child, or the leaf at the right end of
// its subtree's skip link, or nil.
func (n *Node[K]) Right() *Node[K] {
	return n.right.Target()
}

// Trie is an X-Fast Trie over keys of type K.
type Trie[K constraints.Unsigned] struct {
	size int
	lss  []*lss.Map[K, *Node[K]]
}

const (
	leftDir  = false
	rightDir = true
)

func bitLength[K constraints.Unsigned]() int {
	var z K
	return 8 * int(unsafe.Sizeof(z))
}

// New creates an empty X-Fast Trie.
func New[K constraints.Unsigned]() *Trie[K] {
	w := bitLength[K]()
	t := &Trie[K]{lss: make([]*lss.Map[K, *Node[K]], w+1)}
	for i := range t.lss {
		t.lss[i] = lss.New[K, *Node[K]]()
	}
	return t
}

// BitLength returns the bit width of K.
func (t *Trie[K]) BitLength() int {
	return len(t.lss) - 1
}

// UpperBound returns the maximum representable key.
func (t *Trie[K]) UpperBound() K {
	return ^K(0)
}

// LowerBound returns the minimum representable key, always 0.
func (t *Trie[K]) LowerBound() K {
	var zero K
	return zero
}

// Size returns the number of keys stored.
func (t *Trie[K]) Size() int {
	return t.size
}

// Empty reports whether the trie holds no keys.
func (t *Trie[K]) Empty() bool {
	return t.size == 0
}

// Contains reports whether key is present.
func (t *Trie[K]) Contains(key K) bool {
	return t.lss[t.BitLength()].Contains(key)
}

// NodeAt returns the leaf node holding key, or nil if key is absent.
func (t *Trie[K]) NodeAt(key K) *Node[K] {
	n, _ := t.lss[t.BitLength()].At(key)
	return n
}

// InclusiveSuccessorNode returns the node holding the smallest key
// greater than or equal to key, or nil if none exists.
//
// This is distinct from SuccessorNode (strict) and exists only to serve
// the Y-Fast Trie's bucket routing: a bucket there is indexed by its own
// true maximum, so the key being routed can legitimately equal a
// representative exactly, a case the reference implementation's
// successor-of-(key-1) routing trick never has to handle because its
// representatives are never equal to a real stored key.
func (t *Trie[K]) InclusiveSuccessorNode(key K) *Node[K] {
	if n := t.NodeAt(key); n != nil {
		return n
	}
	return t.SuccessorNode(key)
}

func (t *Trie[K]) getPrefix(key K, levelIndex int) K {
	if levelIndex == 0 {
		var zero K
		return zero
	}
	return key >> uint(t.BitLength()-levelIndex)
}

func getDirection[K constraints.Unsigned](prefix K) bool {
	return prefix&1 != 0
}

func (t *Trie[K]) levelIndexOfLongestMatchingPrefix(key K) int {
	low, high := 0, t.BitLength()
	for low <= high {
		mid := (low + high) >> 1
		prefix := t.getPrefix(key, mid)
		if t.lss[mid].Contains(prefix) {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return low - 1
}

func absDiff[K constraints.Unsigned](a, b K) K {
	if a > b {
		return a - b
	}
	return b - a
}

// closestLeaf returns the leaf closest to key, or the leaf itself if key
// is present.
func (t *Trie[K]) closestLeaf(key K) *Node[K] {
	if t.Contains(key) {
		n, _ := t.lss[t.BitLength()].At(key)
		return n
	}

	levelIndex := t.levelIndexOfLongestMatchingPrefix(key)
	prefix := t.getPrefix(key, levelIndex)
	n, _ := t.lss[levelIndex].At(prefix)

	childPrefix := t.getPrefix(key, levelIndex+1)
	direction := getDirection(childPrefix)

	var leaf *Node[K]
	if direction == rightDir {
		leaf = n.right.Target()
	} else {
		leaf = n.left.Target()
	}

	var other *Node[K]
	if direction == rightDir {
		other = leaf.right.Target()
	} else {
		other = leaf.left.Target()
	}
	if other == nil {
		return leaf
	}

	if absDiff(leaf.key, key) < absDiff(other.key, key) {
		return leaf
	}
	return other
}

// PredecessorNode returns the node holding the largest key less than key.
func (t *Trie[K]) PredecessorNode(key K) *Node[K] {
	if t.Empty() {
		return nil
	}
	n := t.closestLeaf(key)
	if key <= n.key {
		return n.left.Target()
	}
	return n
}

// SuccessorNode returns the node holding the smallest key greater than key.
func (t *Trie[K]) SuccessorNode(key K) *Node[K] {
	if t.Empty() {
		return nil
	}
	n := t.closestLeaf(key)
	if key >= n.key {
		return n.right.Target()
	}
	return n
}

// PredecessorAndSuccessorNodes returns both the predecessor and successor
// nodes of key in one search.
func (t *Trie[K]) PredecessorAndSuccessorNodes(key K) (*Node[K], *Node[K]) {
	if t.Empty() {
		return nil, nil
	}
	n := t.closestLeaf(key)
	switch {
	case key < n.key:
		return n.left.Target(), n
	case key > n.key:
		return n, n.right.Target()
	default:
		return n.left.Target(), n.right.Target()
	}
}

// Predecessor returns the largest key strictly less than key.
func (t *Trie[K]) Predecessor(key K) (K, bool) {
	n := t.PredecessorNode(key)
	if n == nil {
		var zero K
		return zero, false
	}
	return n.key, true
}

// Successor returns the smallest key strictly greater than key.
func (t *Trie[K]) Successor(key K) (K, bool) {
	n := t.SuccessorNode(key)
	if n == nil {
		var zero K
		return zero, false
	}
	return n.key, true
}

// Min returns the smallest key present, if any.
func (t *Trie[K]) Min() (K, bool) {
	if t.Contains(t.LowerBound()) {
		return t.LowerBound(), true
	}
	return t.Successor(t.LowerBound())
}

// Max returns the largest key present, if any.
func (t *Trie[K]) Max() (K, bool) {
	if t.Contains(t.UpperBound()) {
		return t.UpperBound(), true
	}
	return t.Predecessor(t.UpperBound())
}

// Insert adds key to the trie. It is a no-op if key is already present.
func (t *Trie[K]) Insert(key K) {
	if t.Contains(key) {
		return
	}

	pred, succ := t.PredecessorAndSuccessorNodes(key)

	leaf := &Node[K]{key: key}
	leaf.left.SetTarget(pred)
	leaf.right.SetTarget(succ)
	w := t.BitLength()
	t.lss[w].Insert(key, leaf)
	t.size++

	if pred != nil {
		pred.right.SetTarget(leaf)
	}
	if succ != nil {
		succ.left.SetTarget(leaf)
	}

	var zero K
	if !t.lss[0].Contains(zero) {
		t.lss[0].Insert(zero, &Node[K]{key: zero})
	}

	parent, _ := t.lss[0].At(zero)
	for levelIndex := 1; levelIndex < w; levelIndex++ {
		prefix := t.getPrefix(key, levelIndex)
		direction := getDirection(prefix)

		if direction == leftDir {
			if parent.left.IsNil() || parent.left.IsSkip() {
				n := &Node[K]{key: prefix}
				t.lss[levelIndex].Insert(prefix, n)
				parent.left.SetTarget(n)
			}
			if parent.right.IsNil() ||
				(parent.right.IsSkip() && key > parent.right.Target().key) {
				parent.right.SetSkipLink(leaf)
			}
			parent = parent.left.Target()
		} else {
			if parent.right.IsNil() || parent.right.IsSkip() {
				n := &Node[K]{key: prefix}
				t.lss[levelIndex].Insert(prefix, n)
				parent.right.SetTarget(n)
			}
			if parent.left.IsNil() ||
				(parent.left.IsSkip() && key < parent.left.Target().key) {
				parent.left.SetSkipLink(leaf)
			}
			parent = parent.right.Target()
		}
	}

	direction := getDirection(key)
	if direction == leftDir {
		parent.left.SetTarget(leaf)
		if parent.right.IsNil() {
			parent.right.SetSkipLink(leaf)
		}
	} else {
		parent.right.SetTarget(leaf)
		if parent.left.IsNil() {
			parent.left.SetSkipLink(leaf)
		}
	}
}

// Remove deletes key from the trie. It is a no-op if key is absent.
func (t *Trie[K]) Remove(key K) {
	if !t.Contains(key) {
		return
	}

	leaf, _ := t.lss[t.BitLength()].At(key)
	pred := leaf.left.Target()
	succ := leaf.right.Target()

	t.lss[t.BitLength()].Erase(key)
	t.size--

	if pred != nil {
		pred.right.SetTarget(succ)
	}
	if succ != nil {
		succ.left.SetTarget(pred)
	}

	for level := t.BitLength() - 1; level >= 0; level-- {
		prefix := t.getPrefix(key, level)
		leftChildPrefix := prefix << 1
		rightChildPrefix := (prefix << 1) | 1

		leftExists := t.lss[level+1].Contains(leftChildPrefix)
		rightExists := t.lss[level+1].Contains(rightChildPrefix)

		if leftExists && rightExists {
			continue
		}

		parent, _ := t.lss[level].At(prefix)

		if !leftExists && !rightExists {
			t.lss[level].Erase(prefix)
			continue
		}

		if !leftExists && (parent.left.Target() == leaf || !parent.left.IsSkip()) {
			parent.left.SetSkipLink(succ)
		} else if !rightExists && (parent.right.Target() == leaf || !parent.right.IsSkip()) {
			parent.right.SetSkipLink(pred)
		}
	}
}
