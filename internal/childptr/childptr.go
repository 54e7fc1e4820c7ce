// Package childptr implements the tagged child reference used by the
// X-Fast Trie: a node pointer with one spare bit recording whether that
// pointer is a real child or a skip link to an extreme descendant.
//
// The reference implementation's AugmentedPointer<Ptr_, Bits_>
// (original_source/src/augmented-pointer/augmented-pointer.h) packs this
// bit into the low bits of the pointer itself via reinterpret_cast. Go
// gives no safe way to steal bits from a live pointer and hand them back
// without risking the garbage collector losing track of the object in
// between, so Ptr stores the target and the flag as two explicit fields
// instead (spec.md §4.1/§9 permits this), keeping only the reference's
// API shape: one value that answers "what's the child" and "is it a
// skip link" together.
package childptr

// Ptr is a child reference plus a one-bit skip-link flag. The zero value
// represents "no child": Target returns nil and IsSkip returns false.
type Ptr[N any] struct {
	target *N
	skip   bool
}

// Wrap packs target into a Ptr with the skip flag clear. It panics if
// target is nil: tagging a null reference is meaningless and forbidden
// by the same invariant the augmented pointer enforces in the reference
// implementation (set_ptr asserts the stored pointer is never null
// before the control bits are touched).
func Wrap[N any](target *N) Ptr[N] {
	if target == nil {
		panic("childptr: cannot wrap a nil target")
	}
	return Ptr[N]{target: target}
}

// Target returns the referenced node, or nil if this Ptr is empty.
func (p Ptr[N]) Target() *N {
	return p.target
}

// IsNil reports whether this Ptr has no target.
func (p Ptr[N]) IsNil() bool {
	return p.target == nil
}

// IsSkip reports whether this Ptr's target is a skip link rather than a
// real child.
func (p Ptr[N]) IsSkip() bool {
	return p.skip
}

// SetTarget replaces the referenced node and clears the skip flag. Passing
// nil clears the pointer entirely.
func (p *Ptr[N]) SetTarget(target *N) {
	p.target, p.skip = target, false
}

// MarkSkip sets the skip flag on the current target. It is a no-op if the
// Ptr is empty.
func (p *Ptr[N]) MarkSkip() {
	if p.target == nil {
		return
	}
	p.skip = true
}

// SetSkipLink replaces the referenced node and sets the skip flag in one
// step, matching the reference's set_left_skip_link/set_right_skip_link.
// A nil target is permitted and yields a skip-flagged pointer with no
// target; the X-Fast Trie's remove path always passes a non-nil neighbor.
func (p *Ptr[N]) SetSkipLink(target *N) {
	p.target, p.skip = target, true
}

// ClearSkip drops the skip flag without touching the target, matching a
// real child being installed over a previous skip link.
func (p *Ptr[N]) ClearSkip() {
	if p.target == nil {
		return
	}
	p.skip = false
}
