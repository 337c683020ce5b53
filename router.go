package keyroute

import (
	stdcmp "cmp"
	"errors"
	"hash"
	"io"
	"iter"
	"slices"

	"github.com/gobwas/avl"
)

// ErrEmpty is returned by Route() when the router holds no nodes.
var ErrEmpty = errors.New("keyroute: route on empty router")

// Router is an immutable set of distinct, totally ordered node identifiers
// together with a constant time routing function from arbitrary keys to
// one of them.
//
// Routers are plain values: mutators return a new Router and leave the
// receiver untouched, so a Router may be shared between goroutines
// without synchronization. The zero Router is not usable; construct one
// with Empty, Of, From or Ordered.
type Router[T any] struct {
	// cmp is the total order of nodes. Two nodes are the same element
	// exactly when cmp reports zero.
	cmp func(a, b T) int

	// hash optionally overrides the key digest function.
	hash func() hash.Hash64

	// elems is the canonical strictly ascending node sequence.
	// It is never shared mutably: every mutator allocates a fresh slice.
	elems []T

	// members holds the same nodes in a persistent AVL tree, giving
	// Contains() without a scan and structural sharing between derived
	// routers.
	members avl.Tree
}

// Empty returns a Router of zero nodes ordered by cmp.
// Empty panics if cmp is nil.
func Empty[T any](cmp func(a, b T) int) Router[T] {
	if cmp == nil {
		panic("keyroute: comparator must not be nil")
	}
	return Router[T]{cmp: cmp}
}

// Of returns a Router of the given nodes ordered by cmp.
// Nodes that compare equal are collapsed into one.
func Of[T any](cmp func(a, b T) int, xs ...T) Router[T] {
	return Empty(cmp).AddAll(xs)
}

// From is Of() for an iterator of nodes.
func From[T any](cmp func(a, b T) int, xs iter.Seq[T]) Router[T] {
	return Empty(cmp).AddAll(slices.Collect(xs))
}

// Ordered returns a Router of naturally ordered nodes.
func Ordered[T stdcmp.Ordered](xs ...T) Router[T] {
	return Of(stdcmp.Compare[T], xs...)
}

// WithHash returns a router identical to r whose key digests are computed
// by hash functions constructed with fn instead of the default xxhash.
// Hash states constructed by fn are not pooled.
func (r Router[T]) WithHash(fn func() hash.Hash64) Router[T] {
	r.hash = fn
	return r
}

// Size returns the number of distinct nodes.
func (r Router[T]) Size() int {
	return len(r.elems)
}

// IsEmpty reports whether the router holds no nodes.
func (r Router[T]) IsEmpty() bool {
	return len(r.elems) == 0
}

// Contains reports whether x is a current member.
func (r Router[T]) Contains(x T) bool {
	return r.members.Search(member[T]{x, r.cmp}) != nil
}

// Items returns a copy of the nodes in ascending order.
func (r Router[T]) Items() []T {
	return slices.Clone(r.elems)
}

// All iterates over the nodes in ascending order.
func (r Router[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range r.elems {
			if !yield(x) {
				return
			}
		}
	}
}

// Equal reports whether r and x hold the same nodes.
// Two equal routers route every key to the same node.
func (r Router[T]) Equal(x Router[T]) bool {
	if len(r.elems) != len(x.elems) {
		return false
	}
	for i := range r.elems {
		if r.cmp(r.elems[i], x.elems[i]) != 0 {
			return false
		}
	}
	return true
}

// Add returns a router with x added.
// It returns r itself, untouched, when x is already a member.
//
// The new node is appended and the whole sequence is resorted, which
// costs O(n log n). Membership changes are expected to be rare relative
// to routing calls, so the resort is kept over a cleverer insertion.
func (r Router[T]) Add(x T) Router[T] {
	m := member[T]{x, r.cmp}
	if r.members.Search(m) != nil {
		return r
	}
	elems := make([]T, len(r.elems), len(r.elems)+1)
	copy(elems, r.elems)
	elems = append(elems, x)
	slices.SortStableFunc(elems, r.cmp)

	r.members = mustInsert(r.members, m)
	r.elems = elems
	assertConsistent(r.elems, r.members, r.cmp)
	return r
}

// AddAll returns a router with every node of xs not already present
// added. Already present nodes and duplicates within xs are skipped in a
// single pass, then the combined sequence is sorted once. The sort is
// stable: nodes that compare equal keep their relative order.
//
// AddAll returns r itself, untouched, when xs contributes no new node.
func (r Router[T]) AddAll(xs []T) Router[T] {
	members := r.members
	var fresh []T
	for _, x := range xs {
		m := member[T]{x, r.cmp}
		if members.Search(m) != nil {
			continue
		}
		members = mustInsert(members, m)
		fresh = append(fresh, x)
	}
	if len(fresh) == 0 {
		return r
	}
	elems := make([]T, 0, len(r.elems)+len(fresh))
	elems = append(elems, r.elems...)
	elems = append(elems, fresh...)
	slices.SortStableFunc(elems, r.cmp)

	r.members = members
	r.elems = elems
	assertConsistent(r.elems, r.members, r.cmp)
	return r
}

// Remove returns a router with x removed.
// It returns r itself, untouched, when x is not a member.
//
// No resort happens here: dropping one node from a sorted sequence keeps
// it sorted.
func (r Router[T]) Remove(x T) Router[T] {
	members, existed := r.members.Delete(member[T]{x, r.cmp})
	if existed == nil {
		return r
	}
	elems := make([]T, 0, len(r.elems)-1)
	for _, e := range r.elems {
		if r.cmp(e, x) != 0 {
			elems = append(elems, e)
		}
	}
	r.members = members
	r.elems = elems
	assertConsistent(r.elems, r.members, r.cmp)
	return r
}

// Route maps key to exactly one current node.
//
// For a fixed router value and a fixed key the result is a pure function
// of the two: independently running processes that hold the same
// membership agree on the owner of the key without communicating.
//
// Route fails with ErrEmpty when the router holds no nodes. Callers must
// either check IsEmpty() or handle the error; there is no default node.
func (r Router[T]) Route(key io.WriterTo) (T, error) {
	if len(r.elems) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	h := avalanche(int32(r.digest(key)))
	i := int(abs32(h) % uint32(len(r.elems)))
	return r.elems[i], nil
}
