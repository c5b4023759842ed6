package interval

import (
	"fmt"
	"math"

	"github.com/biogo/store/interval"
)

// PosType is the type used to represent interval coordinates.  int32 should be
// wide enough for some time to come, since that's what BAM is limited to.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32

// Interval is a single immutable [Start, End) span.
type Interval struct {
	Start PosType
	End   PosType
}

// Len returns End - Start.
func (iv Interval) Len() PosType {
	return iv.End - iv.Start
}

// Overlaps returns true iff iv and the half-open range [start, end) share at
// least one position.
func (iv Interval) Overlaps(start, end PosType) bool {
	return iv.Start < end && iv.End > start
}

// Contains returns true iff [start, end) lies entirely inside iv.
func (iv Interval) Contains(start, end PosType) bool {
	return iv.Start <= start && iv.End >= end
}

// node wraps an Interval for storage in the IntTree.  id is the insertion
// index, which makes duplicate coordinates distinct elements and fixes the
// order of equal-start results.
type node struct {
	iv Interval
	id uintptr
}

func (n *node) Overlap(r interval.IntRange) bool {
	return int(n.iv.Start) < r.End && int(n.iv.End) > r.Start
}

func (n *node) ID() uintptr { return n.id }

func (n *node) Range() interval.IntRange {
	return interval.IntRange{Start: int(n.iv.Start), End: int(n.iv.End)}
}

// query is the half-open [start, end) overlap predicate handed to the tree.
// The tree also uses it to prune subtrees whose covering range can't overlap.
type query struct {
	start, end int
}

func (q query) Overlap(r interval.IntRange) bool {
	return r.Start < q.end && r.End > q.start
}

// Index is a write-once, read-many overlap index.  Intervals are inserted in
// any order; the first Query (or an explicit Freeze) finalizes the tree, after
// which it is safe for concurrent readers.
type Index struct {
	tree   interval.IntTree
	n      uintptr
	frozen bool
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{}
}

// Insert adds iv to the index.  Duplicates are kept.  It panics if the index
// has already been queried.
func (x *Index) Insert(iv Interval) error {
	if x.frozen {
		panic("interval.Index: Insert called after Freeze")
	}
	if iv.End < iv.Start {
		return fmt.Errorf("interval.Index.Insert: inverted interval [%d, %d)", iv.Start, iv.End)
	}
	n := &node{iv: iv, id: x.n}
	// The fast path skips per-insert range maintenance; Freeze fixes the
	// ranges up in one pass.
	if err := x.tree.Insert(n, true); err != nil {
		return err
	}
	x.n++
	return nil
}

// Freeze finalizes the augmented subtree ranges.  Calling it more than once
// is harmless.
func (x *Index) Freeze() {
	if x.frozen {
		return
	}
	if x.tree.Root != nil {
		x.tree.AdjustRanges()
	}
	x.frozen = true
}

// Len returns the number of stored intervals.
func (x *Index) Len() int {
	return x.tree.Len()
}

// Query returns every stored interval overlapping [start, end), ordered by
// (Start, insertion order).
func (x *Index) Query(start, end PosType) []Interval {
	x.Freeze()
	if end <= start {
		return nil
	}
	hits := x.tree.Get(query{start: int(start), end: int(end)})
	if len(hits) == 0 {
		return nil
	}
	result := make([]Interval, len(hits))
	for i, h := range hits {
		result[i] = h.(*node).iv
	}
	return result
}

// Do calls fn on every interval overlapping [start, end) in Query order,
// without allocating a result slice.  Iteration stops early if fn returns
// true.
func (x *Index) Do(start, end PosType, fn func(Interval) bool) {
	x.Freeze()
	if end <= start {
		return
	}
	x.tree.DoMatching(func(e interval.IntInterface) bool {
		return fn(e.(*node).iv)
	}, query{start: int(start), end: int(end)})
}
