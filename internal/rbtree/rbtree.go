// Package rbtree implements a red-black tree ordered set used as the
// bucket type inside a Y-Fast Trie partition. The rotation/fixup
// algorithms are adapted from the CLRS-derived reference
// (other_examples' red-black tree set), generalized to an unsigned
// integer key and extended with the operations a Y-Fast Trie bucket
// needs that a plain ordered set does not: predecessor/successor,
// median, and split/merge.
//
// Split and merge do not reuse CLRS rotation fixups at all: they collect
// the tree's sorted keys into a slice and rebuild a balanced tree from
// that slice in one linear pass, coloring every node black except the
// deepest level, red. The reference C++ implementation instead
// reinserts every node one at a time through the ordinary insert path;
// this package does not, because a Y-Fast Trie bucket's size is bounded
// by a constant factor of w, and a balanced rebuild keeps a split or
// merge O(n) instead of O(n log n) with no lingering nearly-degenerate
// shape left over from repeated single-node reinsertion.
package rbtree

import (
	"iter"

	"golang.org/x/exp/constraints"
)

type color bool

const (
	black color = true
	red   color = false
)

type direction byte

const (
	left direction = iota
	right
	nodir
)

type node[K constraints.Unsigned] struct {
	key    K
	color  color
	left   *node[K]
	right  *node[K]
	parent *node[K]
}

func isRed[K constraints.Unsigned](n *node[K]) bool {
	return n != nil && n.color == red
}

// Tree is an ordered set of K, implemented as a red-black tree with
// split/merge support. The zero value is an empty, ready-to-use tree.
type Tree[K constraints.Unsigned] struct {
	root *node[K]
	size int

	minCache, maxCache *node[K]
	cacheDirty         bool
}

// Len reports the number of keys in the tree.
func (t *Tree[K]) Len() int {
	return t.size
}

// Empty reports whether the tree holds no keys.
func (t *Tree[K]) Empty() bool {
	return t.size == 0
}

// Contains reports whether key is present.
func (t *Tree[K]) Contains(key K) bool {
	_, found := t.lookup(key)
	return found
}

// lookup finds the node holding key. If key is absent it returns nil and
// false; findInsertionPoint reports where an absent key would be attached.
func (t *Tree[K]) lookup(key K) (*node[K], bool) {
	n := t.root
	for n != nil {
		switch {
		case key == n.key:
			return n, true
		case key < n.key:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil, false
}

func (t *Tree[K]) findInsertionPoint(key K) (parent *node[K], dir direction, found bool) {
	n := t.root
	for n != nil {
		switch {
		case key == n.key:
			return n, nodir, true
		case key < n.key:
			if n.left == nil {
				return n, left, false
			}
			n = n.left
		default:
			if n.right == nil {
				return n, right, false
			}
			n = n.right
		}
	}
	return nil, nodir, false
}

// Insert adds key to the tree. It is a no-op if key is already present.
func (t *Tree[K]) Insert(key K) {
	if t.root == nil {
		t.root = &node[K]{key: key, color: black}
		t.size = 1
		t.minCache, t.maxCache = t.root, t.root
		t.cacheDirty = false
		return
	}

	parent, dir, found := t.findInsertionPoint(key)
	if found {
		return
	}

	n := &node[K]{key: key, color: red, parent: parent}
	switch dir {
	case left:
		parent.left = n
	case right:
		parent.right = n
	}
	t.fixupInsert(n)
	t.size++

	if !t.cacheDirty {
		if t.minCache == nil || key < t.minCache.key {
			t.minCache = n
		}
		if t.maxCache == nil || key > t.maxCache.key {
			t.maxCache = n
		}
	}
}

// Remove deletes key from the tree. It is a no-op if key is absent.
func (t *Tree[K]) Remove(key K) {
	z, found := t.lookup(key)
	if !found {
		return
	}
	t.removeNode(z)
	t.size--
	// Min/max may have changed in a way that is not a cheap local update
	// (e.g. removing the minimum requires walking to the new leftmost
	// node). Rather than do that walk eagerly on every removal, the
	// cache is marked dirty and lazily recomputed on the next query.
	t.cacheDirty = true
	if t.size == 0 {
		t.minCache, t.maxCache = nil, nil
		t.cacheDirty = false
	}
}

func (t *Tree[K]) removeNode(z *node[K]) {
	y := z
	yOriginalColor := y.color
	var x, xParent *node[K]

	switch {
	case z.left == nil:
		x = z.right
		xParent = z.parent
		t.transplant(z, z.right)
	case z.right == nil:
		x = z.left
		xParent = z.parent
		t.transplant(z, z.left)
	default:
		y = minimum(z.right)
		yOriginalColor = y.color
		x = y.right
		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	if yOriginalColor == black {
		t.fixupDelete(x, xParent)
	}
}

func (t *Tree[K]) transplant(u, v *node[K]) {
	switch {
	case u.parent == nil:
		t.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	if v != nil {
		v.parent = u.parent
	}
}

func (t *Tree[K]) rotateLeft(x *node[K]) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		t.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (t *Tree[K]) rotateRight(y *node[K]) {
	x := y.left
	y.left = x.right
	if x.right != nil {
		x.right.parent = y
	}
	x.parent = y.parent
	switch {
	case y.parent == nil:
		t.root = x
	case y == y.parent.left:
		y.parent.left = x
	default:
		y.parent.right = x
	}
	x.right = y
	y.parent = x
}

func (t *Tree[K]) fixupInsert(z *node[K]) {
loop:
	for {
		switch {
		case z.parent == nil:
			fallthrough
		case z.parent.color == black:
			break loop
		default:
			grandparent := z.parent.parent
			if z.parent == grandparent.left {
				uncle := grandparent.right
				if isRed(uncle) {
					z.parent.color = black
					uncle.color = black
					grandparent.color = red
					z = grandparent
				} else {
					if z == z.parent.right {
						z = z.parent
						t.rotateLeft(z)
					}
					z.parent.color = black
					grandparent.color = red
					t.rotateRight(grandparent)
				}
			} else {
				uncle := grandparent.left
				if isRed(uncle) {
					z.parent.color = black
					uncle.color = black
					grandparent.color = red
					z = grandparent
				} else {
					if z == z.parent.left {
						z = z.parent
						t.rotateRight(z)
					}
					z.parent.color = black
					grandparent.color = red
					t.rotateLeft(grandparent)
				}
			}
		}
	}
	t.root.color = black
}

// fixupDelete restores red-black properties after a node is spliced out.
// x may be nil (the spliced-out subtree was empty), so the fixup is
// parameterized by both x and its parent rather than relying on x.parent.
func (t *Tree[K]) fixupDelete(x, xParent *node[K]) {
loop:
	for {
		switch {
		case x == t.root:
			break loop
		case isRed(x):
			break loop
		case x == xParent.right:
			w := xParent.left
			if isRed(w) {
				w.color = black
				xParent.color = red
				t.rotateRight(xParent)
				w = xParent.left
			}
			if w != nil {
				switch {
				case !isRed(w.left) && !isRed(w.right):
					w.color = red
					x, xParent = xParent, xParent.parent
					continue loop
				case isRed(w.right) && !isRed(w.left):
					w.right.color = black
					w.color = red
					t.rotateLeft(w)
					w = xParent.left
				}
				w.color = xParent.color
				xParent.color = black
				if w.left != nil {
					w.left.color = black
				}
				t.rotateRight(xParent)
				x, xParent = t.root, nil
			} else {
				x, xParent = xParent, xParent.parent
			}
		default:
			w := xParent.right
			if isRed(w) {
				w.color = black
				xParent.color = red
				t.rotateLeft(xParent)
				w = xParent.right
			}
			if w != nil {
				switch {
				case !isRed(w.left) && !isRed(w.right):
					w.color = red
					x, xParent = xParent, xParent.parent
					continue loop
				case isRed(w.left) && !isRed(w.right):
					w.left.color = black
					w.color = red
					t.rotateRight(w)
					w = xParent.right
				}
				w.color = xParent.color
				xParent.color = black
				if w.right != nil {
					w.right.color = black
				}
				t.rotateLeft(xParent)
				x, xParent = t.root, nil
			} else {
				x, xParent = xParent, xParent.parent
			}
		}
		if x == nil && xParent == nil {
			break loop
		}
	}
	if x != nil {
		x.color = black
	}
}

func minimum[K constraints.Unsigned](n *node[K]) *node[K] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func maximum[K constraints.Unsigned](n *node[K]) *node[K] {
	for n.right != nil {
		n = n.right
	}
	return n
}

func (t *Tree[K]) refreshCache() {
	if !t.cacheDirty {
		return
	}
	if t.root == nil {
		t.minCache, t.maxCache = nil, nil
	} else {
		t.minCache = minimum(t.root)
		t.maxCache = maximum(t.root)
	}
	t.cacheDirty = false
}

// Min returns the smallest key, if any.
func (t *Tree[K]) Min() (K, bool) {
	t.refreshCache()
	if t.minCache == nil {
		var zero K
		return zero, false
	}
	return t.minCache.key, true
}

// Max returns the largest key, if any.
func (t *Tree[K]) Max() (K, bool) {
	t.refreshCache()
	if t.maxCache == nil {
		var zero K
		return zero, false
	}
	return t.maxCache.key, true
}

// Predecessor returns the largest key strictly less than key, found via
// the node that would occupy key's position: descend the left subtree
// if key has one, otherwise walk up through ancestors until an ancestor
// is reached via a right-child edge.
func (t *Tree[K]) Predecessor(key K) (K, bool) {
	n, found := t.lookup(key)
	if found {
		if n.left != nil {
			return maximum(n.left).key, true
		}
		return ancestorPredecessor(n)
	}
	// key is absent: find the greatest key less than it by walking the
	// search path and remembering the last node at which it turned right.
	var best *node[K]
	cur := t.root
	for cur != nil {
		if key < cur.key {
			cur = cur.left
		} else {
			best = cur
			cur = cur.right
		}
	}
	if best == nil {
		var zero K
		return zero, false
	}
	return best.key, true
}

func ancestorPredecessor[K constraints.Unsigned](n *node[K]) (K, bool) {
	cur := n
	p := n.parent
	for p != nil && cur == p.left {
		cur = p
		p = p.parent
	}
	if p == nil {
		var zero K
		return zero, false
	}
	return p.key, true
}

// Successor returns the smallest key strictly greater than key.
func (t *Tree[K]) Successor(key K) (K, bool) {
	n, found := t.lookup(key)
	if found {
		if n.right != nil {
			return minimum(n.right).key, true
		}
		return ancestorSuccessor(n)
	}
	var best *node[K]
	cur := t.root
	for cur != nil {
		if key > cur.key {
			cur = cur.right
		} else {
			best = cur
			cur = cur.left
		}
	}
	if best == nil {
		var zero K
		return zero, false
	}
	return best.key, true
}

func ancestorSuccessor[K constraints.Unsigned](n *node[K]) (K, bool) {
	cur := n
	p := n.parent
	for p != nil && cur == p.right {
		cur = p
		p = p.parent
	}
	if p == nil {
		var zero K
		return zero, false
	}
	return p.key, true
}

// Median returns the key at index floor(n/2) in sorted order. It panics
// if the tree is empty.
func (t *Tree[K]) Median() K {
	if t.root == nil {
		panic("rbtree: Median called on an empty tree")
	}
	keys := t.sortedKeys()
	return keys[len(keys)/2]
}

func (t *Tree[K]) sortedKeys() []K {
	keys := make([]K, 0, t.size)
	var walk func(*node[K])
	walk = func(n *node[K]) {
		if n == nil {
			return
		}
		walk(n.left)
		keys = append(keys, n.key)
		walk(n.right)
	}
	walk(t.root)
	return keys
}

// Split divides the tree's keys into two new balanced trees, with a cut
// at the middle index of the sorted key vector: the left tree keeps
// indices [0, mid), the right tree keeps [mid, n). It panics if the
// tree has fewer than 2 keys. The receiver is left empty afterward.
func (t *Tree[K]) Split() (*Tree[K], *Tree[K]) {
	if t.size < 2 {
		panic("rbtree: Split requires at least 2 keys")
	}
	keys := t.sortedKeys()
	mid := len(keys) / 2

	left := buildBalanced(keys[:mid])
	right := buildBalanced(keys[mid:])

	t.root, t.size = nil, 0
	t.minCache, t.maxCache, t.cacheDirty = nil, nil, false

	return left, right
}

// Merge combines l and r, which must be non-empty and disjoint with
// every key in l strictly less than every key in r, into one new
// balanced tree. Both l and r are left empty afterward. It panics if
// either tree is empty or the ordering requirement is violated.
func Merge[K constraints.Unsigned](l, r *Tree[K]) *Tree[K] {
	if l.Empty() || r.Empty() {
		panic("rbtree: Merge requires two non-empty trees")
	}
	lMax, _ := l.Max()
	rMin, _ := r.Min()
	if !(lMax < rMin) {
		panic("rbtree: Merge requires every key in l to be less than every key in r")
	}

	keys := make([]K, 0, l.size+r.size)
	keys = append(keys, l.sortedKeys()...)
	keys = append(keys, r.sortedKeys()...)

	merged := buildBalanced(keys)

	l.root, l.size = nil, 0
	l.minCache, l.maxCache, l.cacheDirty = nil, nil, false
	r.root, r.size = nil, 0
	r.minCache, r.maxCache, r.cacheDirty = nil, nil, false

	return merged
}

// buildBalanced constructs a perfectly balanced binary search tree from
// a sorted key slice, colored all black except the deepest level, red.
func buildBalanced[K constraints.Unsigned](keys []K) *Tree[K] {
	t := &Tree[K]{}
	if len(keys) == 0 {
		return t
	}
	depth := 0
	for n := len(keys); n > 1; n = n / 2 {
		depth++
	}
	t.root = buildBalancedNode(keys, nil, 0, depth)
	t.size = len(keys)
	t.minCache = minimum(t.root)
	t.maxCache = maximum(t.root)
	return t
}

func buildBalancedNode[K constraints.Unsigned](keys []K, parent *node[K], level, deepest int) *node[K] {
	if len(keys) == 0 {
		return nil
	}
	mid := len(keys) / 2
	n := &node[K]{key: keys[mid], parent: parent, color: black}
	if level == deepest {
		n.color = red
	}
	n.left = buildBalancedNode(keys[:mid], n, level+1, deepest)
	n.right = buildBalancedNode(keys[mid+1:], n, level+1, deepest)
	return n
}

// Keys returns an in-order iterator over the tree's keys.
func (t *Tree[K]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		var walk func(*node[K]) bool
		walk = func(n *node[K]) bool {
			if n == nil {
				return true
			}
			if !walk(n.left) {
				return false
			}
			if !yield(n.key) {
				return false
			}
			return walk(n.right)
		}
		walk(t.root)
	}
}
