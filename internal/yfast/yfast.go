// Package yfast implements a Y-Fast Trie: a partitioned ordered set that
// layers red-black tree buckets under an X-Fast Trie index keyed by each
// bucket's representative, giving O(log log U) expected predecessor,
// successor, insert, and remove.
//
// The routing and rebalancing algorithm is adapted from the reference
// implementation (original_source/src/y-fast-trie/y-fast-trie.h), with
// one deliberate change: the reference computes a bucket's representative
// arithmetically from a key (a masked/aligned value that is not
// necessarily the bucket's true maximum), while this package always uses
// the bucket's actual maximum as its representative. Concretely this
// means every insert or remove that changes a bucket's maximum must move
// that bucket's index/partition-table entry to the new maximum before
// any size-triggered split or merge runs; the reference never needs to
// because its representative is independent of bucket contents. Bucket
// split itself is not reproduced from the reference either: it walks
// every node of the bucket reinserting one at a time, where this package
// asks the bucket for a balanced two-way split (see internal/rbtree).
package yfast

import (
	"golang.org/x/exp/constraints"

	"github.com/dynaset/yfasttrie/internal/rbtree"
	"github.com/dynaset/yfasttrie/internal/xfast"
	"github.com/dynaset/yfasttrie/internal/lss"
)

// Trie is a Y-Fast Trie over keys of type K.
type Trie[K constraints.Unsigned] struct {
	index      *xfast.Trie[K]
	partitions *lss.Map[K, *rbtree.Tree[K]]
	size       int
}

// New creates an empty Y-Fast Trie.
func New[K constraints.Unsigned]() *Trie[K] {
	return &Trie[K]{
		index:      xfast.New[K](),
		partitions: lss.New[K, *rbtree.Tree[K]](),
	}
}

// UpperBound returns the maximum representable key.
func (t *Trie[K]) UpperBound() K {
	return t.index.UpperBound()
}

// LowerBound returns the minimum representable key, always 0.
func (t *Trie[K]) LowerBound() K {
	return t.index.LowerBound()
}

// BitLength returns the bit width of K.
func (t *Trie[K]) BitLength() int {
	return t.index.BitLength()
}

// Size returns the number of keys stored.
func (t *Trie[K]) Size() int {
	return t.size
}

// Empty reports whether the trie holds no keys.
func (t *Trie[K]) Empty() bool {
	return t.size == 0
}

func (t *Trie[K]) maxPartitionSize() int {
	return 2 * t.BitLength()
}

func (t *Trie[K]) minPartitionSize() int {
	return t.BitLength() / 2
}

// partitionAndNode locates the bucket that would hold key and the index
// node registered under its representative, routing via the index's
// inclusive successor of key: the smallest representative greater than
// or equal to key. A representative here is a bucket's true maximum, so
// key can legitimately equal one exactly (unlike the reference's
// arithmetic representatives, which are never equal to a real key);
// InclusiveSuccessorNode is what makes that case route correctly.
func (t *Trie[K]) partitionAndNode(key K) (*rbtree.Tree[K], *xfast.Node[K]) {
	node := t.index.InclusiveSuccessorNode(key)
	if node == nil {
		return nil, nil
	}
	partition, _ := t.partitions.At(node.Key())
	return partition, node
}

// Contains reports whether key is present.
func (t *Trie[K]) Contains(key K) bool {
	if t.Empty() {
		return false
	}
	partition, _ := t.partitionAndNode(key)
	return partition != nil && partition.Contains(key)
}

// Predecessor returns the largest key strictly less than key.
func (t *Trie[K]) Predecessor(key K) (K, bool) {
	if t.Empty() {
		var zero K
		return zero, false
	}
	partition, node := t.partitionAndNode(key)
	if partition == nil {
		// key is greater than every representative, so it is past the
		// largest stored key entirely: that largest key is its predecessor.
		return t.Max()
	}

	min, _ := partition.Min()
	if min >= key {
		leftNode := node.Left()
		if leftNode == nil {
			var zero K
			return zero, false
		}
		partition, _ = t.partitions.At(leftNode.Key())
	}

	return partition.Predecessor(key)
}

// Successor returns the smallest key strictly greater than key.
func (t *Trie[K]) Successor(key K) (K, bool) {
	if t.Empty() {
		var zero K
		return zero, false
	}
	partition, node := t.partitionAndNode(key)
	if partition == nil {
		var zero K
		return zero, false
	}

	max, _ := partition.Max()
	if max <= key {
		rightNode := node.Right()
		if rightNode == nil {
			var zero K
			return zero, false
		}
		partition, _ = t.partitions.At(rightNode.Key())
	}

	return partition.Successor(key)
}

// Min returns the smallest key present, if any.
func (t *Trie[K]) Min() (K, bool) {
	if t.Empty() {
		var zero K
		return zero, false
	}
	minRep, _ := t.index.Min()
	partition, _ := t.partitions.At(minRep)
	return partition.Min()
}

// Max returns the largest key present, if any.
func (t *Trie[K]) Max() (K, bool) {
	if t.Empty() {
		var zero K
		return zero, false
	}
	maxRep, _ := t.index.Max()
	partition, _ := t.partitions.At(maxRep)
	return partition.Max()
}

// Insert adds key to the trie. It is a no-op if key is already present.
func (t *Trie[K]) Insert(key K) {
	partition, node := t.partitionAndNode(key)

	if partition == nil {
		// No bucket covers this key: start a new singleton bucket and
		// register it under its own value, which is trivially its max.
		partition = &rbtree.Tree[K]{}
		partition.Insert(key)
		t.index.Insert(key)
		t.partitions.Insert(key, partition)
		t.size++
		return
	}

	if partition.Contains(key) {
		return
	}

	oldRep := node.Key()
	oldMax, _ := partition.Max()
	partition.Insert(key)
	t.reindexIfMaxChanged(partition, oldRep, oldMax)

	t.size++

	if partition.Len() > t.maxPartitionSize() {
		t.splitOverflowing(partition)
	}
}

// reindexIfMaxChanged moves a bucket's index/partition-table entry from
// oldRep to its new maximum if that maximum changed as a side effect of
// the caller's insert or remove.
func (t *Trie[K]) reindexIfMaxChanged(partition *rbtree.Tree[K], oldRep, oldMax K) {
	newMax, ok := partition.Max()
	if !ok || newMax == oldMax {
		return
	}
	t.index.Remove(oldRep)
	t.partitions.Erase(oldRep)
	t.index.Insert(newMax)
	t.partitions.Insert(newMax, partition)
}

// splitOverflowing removes partition's current index entry and replaces
// it with two new entries for the balanced halves produced by Split.
func (t *Trie[K]) splitOverflowing(partition *rbtree.Tree[K]) {
	rep, _ := partition.Max()
	t.index.Remove(rep)
	t.partitions.Erase(rep)

	left, right := partition.Split()
	t.registerPartition(left)
	t.registerPartition(right)
}

func (t *Trie[K]) registerPartition(partition *rbtree.Tree[K]) {
	rep, ok := partition.Max()
	if !ok {
		return
	}
	t.index.Insert(rep)
	t.partitions.Insert(rep, partition)
}

// Remove deletes key from the trie. It is a no-op if key is absent.
func (t *Trie[K]) Remove(key K) {
	if t.Empty() {
		return
	}

	partition, node := t.partitionAndNode(key)
	if partition == nil || !partition.Contains(key) {
		return
	}

	oldRep := node.Key()
	oldMax, _ := partition.Max()
	partition.Remove(key)
	t.size--

	if partition.Empty() {
		t.index.Remove(oldRep)
		t.partitions.Erase(oldRep)
		return
	}

	t.reindexIfMaxChanged(partition, oldRep, oldMax)

	if partition.Len() < t.minPartitionSize() && t.partitions.Len() > 1 {
		t.mergeUndersized(partition)
	}
}

// mergeUndersized merges partition with one of its index neighbors,
// preferring the right neighbor when present, else the left.
func (t *Trie[K]) mergeUndersized(partition *rbtree.Tree[K]) {
	rep, _ := partition.Max()
	node := t.index.NodeAt(rep)
	if node == nil {
		return
	}

	var leftNode, rightNode *xfast.Node[K]
	if node.Right() != nil {
		leftNode, rightNode = node, node.Right()
	} else {
		leftNode, rightNode = node.Left(), node
	}
	if leftNode == nil || rightNode == nil {
		return
	}

	leftRep := leftNode.Key()
	rightRep := rightNode.Key()
	leftPartition, _ := t.partitions.At(leftRep)
	rightPartition, _ := t.partitions.At(rightRep)

	t.partitions.Erase(leftRep)
	t.partitions.Erase(rightRep)
	t.index.Remove(leftRep)
	t.index.Remove(rightRep)

	merged := rbtree.Merge(leftPartition, rightPartition)

	if merged.Len() > t.maxPartitionSize() {
		left, right := merged.Split()
		t.registerPartition(left)
		t.registerPartition(right)
		return
	}

	t.registerPartition(merged)
}
