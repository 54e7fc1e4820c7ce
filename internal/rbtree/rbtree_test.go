package rbtree

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/constraints"
)

func TestInsertContains(t *testing.T) {
	tr := &Tree[uint32]{}
	keys := []uint32{5, 3, 8, 1, 4, 7, 9}
	for _, k := range keys {
		tr.Insert(k)
	}
	for _, k := range keys {
		if !tr.Contains(k) {
			t.Fatalf("Contains(%d) = false, want true", k)
		}
	}
	if tr.Contains(100) {
		t.Fatal("Contains(100) = true, want false")
	}
	if tr.Len() != len(keys) {
		t.Fatalf("Len() = %d, want %d", tr.Len(), len(keys))
	}
}

func TestInsertDuplicateIsNoOp(t *testing.T) {
	tr := &Tree[uint32]{}
	tr.Insert(1)
	tr.Insert(1)
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
}

func TestRemove(t *testing.T) {
	tr := &Tree[uint32]{}
	keys := []uint32{10, 5, 15, 3, 7, 12, 20, 1, 4, 6, 8}
	for _, k := range keys {
		tr.Insert(k)
	}
	for _, k := range []uint32{5, 1, 20, 10} {
		tr.Remove(k)
		if tr.Contains(k) {
			t.Fatalf("Contains(%d) = true after removal", k)
		}
	}
	remaining := []uint32{15, 3, 7, 12, 4, 6, 8}
	if tr.Len() != len(remaining) {
		t.Fatalf("Len() = %d, want %d", tr.Len(), len(remaining))
	}
	for _, k := range remaining {
		if !tr.Contains(k) {
			t.Fatalf("Contains(%d) = false, want true", k)
		}
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	tr := &Tree[uint32]{}
	tr.Insert(1)
	tr.Remove(99)
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
}

func TestMinMax(t *testing.T) {
	tr := &Tree[uint32]{}
	if _, ok := tr.Min(); ok {
		t.Fatal("Min() on empty tree should report absent")
	}
	keys := []uint32{42, 7, 99, 3, 12}
	for _, k := range keys {
		tr.Insert(k)
	}
	if min, ok := tr.Min(); !ok || min != 3 {
		t.Fatalf("Min() = %d, %v, want 3, true", min, ok)
	}
	if max, ok := tr.Max(); !ok || max != 99 {
		t.Fatalf("Max() = %d, %v, want 99, true", max, ok)
	}

	tr.Remove(3)
	if min, ok := tr.Min(); !ok || min != 7 {
		t.Fatalf("Min() after removing minimum = %d, %v, want 7, true", min, ok)
	}

	tr.Remove(99)
	if max, ok := tr.Max(); !ok || max != 42 {
		t.Fatalf("Max() after removing maximum = %d, %v, want 42, true", max, ok)
	}
}

func TestPredecessorSuccessor(t *testing.T) {
	tr := &Tree[uint32]{}
	keys := []uint32{10, 20, 30, 40, 50}
	for _, k := range keys {
		tr.Insert(k)
	}

	cases := []struct {
		key      uint32
		wantPred uint32
		predOK   bool
		wantSucc uint32
		succOK   bool
	}{
		{5, 0, false, 10, true},
		{10, 0, false, 20, true},
		{25, 20, true, 30, true},
		{50, 40, true, 0, false},
		{55, 50, true, 0, false},
	}
	for _, c := range cases {
		pred, ok := tr.Predecessor(c.key)
		if ok != c.predOK || (ok && pred != c.wantPred) {
			t.Errorf("Predecessor(%d) = %d, %v, want %d, %v", c.key, pred, ok, c.wantPred, c.predOK)
		}
		succ, ok := tr.Successor(c.key)
		if ok != c.succOK || (ok && succ != c.wantSucc) {
			t.Errorf("Successor(%d) = %d, %v, want %d, %v", c.key, succ, ok, c.wantSucc, c.succOK)
		}
	}
}

func TestMedian(t *testing.T) {
	tr := &Tree[uint32]{}
	for _, k := range []uint32{5, 1, 9, 3, 7} {
		tr.Insert(k)
	}
	// sorted: 1 3 5 7 9, index 2 -> 5
	if got := tr.Median(); got != 5 {
		t.Fatalf("Median() = %d, want 5", got)
	}
}

func TestMedianEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Median() on empty tree must panic")
		}
	}()
	(&Tree[uint32]{}).Median()
}

func TestKeysIsSorted(t *testing.T) {
	tr := &Tree[uint32]{}
	keys := []uint32{9, 1, 8, 2, 7, 3, 6, 4, 5}
	for _, k := range keys {
		tr.Insert(k)
	}
	var got []uint32
	for k := range tr.Keys() {
		got = append(got, k)
	}
	want := append([]uint32(nil), keys...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit(t *testing.T) {
	tr := &Tree[uint32]{}
	keys := []uint32{1, 2, 3, 4, 5, 6, 7, 8}
	for _, k := range keys {
		tr.Insert(k)
	}
	l, r := tr.Split()
	if !tr.Empty() {
		t.Fatal("source tree must be empty after Split")
	}
	var gotLeft, gotRight []uint32
	for k := range l.Keys() {
		gotLeft = append(gotLeft, k)
	}
	for k := range r.Keys() {
		gotRight = append(gotRight, k)
	}
	wantLeft := []uint32{1, 2, 3, 4}
	wantRight := []uint32{5, 6, 7, 8}
	if diff := cmp.Diff(wantLeft, gotLeft); diff != "" {
		t.Fatalf("left split mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantRight, gotRight); diff != "" {
		t.Fatalf("right split mismatch (-want +got):\n%s", diff)
	}
	lMax, _ := l.Max()
	rMin, _ := r.Min()
	if !(lMax < rMin) {
		t.Fatalf("split halves overlap: lMax=%d rMin=%d", lMax, rMin)
	}
}

func TestSplitRequiresTwoKeys(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Split() on a tree with fewer than 2 keys must panic")
		}
	}()
	tr := &Tree[uint32]{}
	tr.Insert(1)
	tr.Split()
}

func TestMerge(t *testing.T) {
	l := &Tree[uint32]{}
	for _, k := range []uint32{1, 2, 3} {
		l.Insert(k)
	}
	r := &Tree[uint32]{}
	for _, k := range []uint32{10, 20, 30} {
		r.Insert(k)
	}
	merged := Merge(l, r)
	if !l.Empty() || !r.Empty() {
		t.Fatal("both input trees must be empty after Merge")
	}
	var got []uint32
	for k := range merged.Keys() {
		got = append(got, k)
	}
	want := []uint32{1, 2, 3, 10, 20, 30}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged keys mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeRequiresDisjointOrder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Merge() with overlapping ranges must panic")
		}
	}()
	l := &Tree[uint32]{}
	l.Insert(5)
	r := &Tree[uint32]{}
	r.Insert(3)
	Merge(l, r)
}

// blackHeight walks every root-to-nil path of n and returns the common
// black-node count, or -1 if paths disagree (an invalid red-black tree).
// It also fails if a red node has a red child.
func blackHeight[K constraints.Unsigned](n *node[K]) int {
	if n == nil {
		return 1
	}
	if isRed(n) && (isRed(n.left) || isRed(n.right)) {
		return -1
	}
	left := blackHeight(n.left)
	right := blackHeight(n.right)
	if left == -1 || right == -1 || left != right {
		return -1
	}
	if isRed(n) {
		return left
	}
	return left + 1
}

func TestBuildBalancedProducesValidRedBlackTree(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 9, 16, 17, 32, 33, 63, 64, 65} {
		keys := make([]uint32, n)
		for i := range keys {
			keys[i] = uint32(i)
		}
		tr := buildBalanced(keys)
		if bh := blackHeight(tr.root); bh == -1 {
			t.Errorf("buildBalanced(%d keys) produced an invalid red-black tree (unequal black heights or red-red violation)", n)
		}
		var got []uint32
		for k := range tr.Keys() {
			got = append(got, k)
		}
		if diff := cmp.Diff(keys, got); diff != "" {
			t.Fatalf("buildBalanced(%d keys) key order mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestBulkInsertRemoveMatchesReferenceOrder(t *testing.T) {
	tr := &Tree[uint32]{}
	present := map[uint32]bool{}
	ops := []struct {
		insert bool
		key    uint32
	}{
		{true, 50}, {true, 20}, {true, 80}, {true, 10}, {true, 30},
		{true, 70}, {true, 90}, {false, 20}, {true, 25}, {false, 50},
		{true, 60}, {false, 90}, {true, 15},
	}
	for _, op := range ops {
		if op.insert {
			tr.Insert(op.key)
			present[op.key] = true
		} else {
			tr.Remove(op.key)
			delete(present, op.key)
		}
	}
	var want []uint32
	for k := range present {
		want = append(want, k)
	}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	var got []uint32
	for k := range tr.Keys() {
		got = append(got, k)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("final key set mismatch (-want +got):\n%s", diff)
	}
}
