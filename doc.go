// Package yfasttrie implements a Y-Fast Trie: a dynamic ordered set over
// a bounded unsigned integer universe supporting expected O(log log U)
// predecessor, successor, contains, insert, and remove, where U is the
// size of the key universe (2^w for a w-bit key type).
//
// The engine is a composite of three layers: a red-black tree used as a
// bounded-size bucket, an X-Fast Trie used to index buckets by their
// representative, and the Y-Fast Trie itself, which routes queries to
// the right bucket and keeps buckets within size bounds via split and
// merge. See the internal/rbtree, internal/xfast, and internal/yfast
// packages for each layer.
package yfasttrie
