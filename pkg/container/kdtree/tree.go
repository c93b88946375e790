/*
 * Copyright 2020 Dennis Kuhnert
 * Copyright 2020 Ivanov Nikita
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */
package kdtree

import (
	"fmt"
	"math"
	"sort"
)

// Allocator is called once per node allocation before the node is
// constructed. A non-nil error aborts the Insert that triggered it and is
// returned to the caller; the tree is left exactly as it was before the
// call. The default Tree has no Allocator hook.
type Allocator func() error

// Tree is an in-memory k-dimensional spatial index. Insert, Erase, Find,
// the range queries and FindNearest are its public surface; Optimise
// destructively rebuilds the tree into a depth-balanced shape by
// recursive median split.
//
// A Tree has value semantics in the sense described by Copy: copying one
// re-inserts every value and then calls Optimise, rather than sharing
// structure with the original.
type Tree[V any] struct {
	k        int
	header   *node[V]
	size     int
	accessor Accessor[V]
	cmp      Comparator
	dist     Distancer[V]
	alloc    Allocator
}

// New constructs an empty Tree of dimensionality k using accessor to read
// each value's per-axis coordinate. k must be positive.
func New[V any](k int, accessor Accessor[V], opts ...Option[V]) *Tree[V] {
	header := &node[V]{}
	header.left = header
	header.right = header

	t := &Tree[V]{
		k:        k,
		header:   header,
		accessor: accessor,
		cmp:      Less,
		dist:     NewEuclideanDistance[V](),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len reports the number of stored values.
func (t *Tree[V]) Len() int { return t.size }

// Empty reports whether the tree holds no values.
func (t *Tree[V]) Empty() bool { return t.size == 0 }

// MaxSize reports the largest size this tree implementation can hold.
func (t *Tree[V]) MaxSize() int { return math.MaxInt }

// K reports the tree's fixed dimensionality.
func (t *Tree[V]) K() int { return t.k }

func (t *Tree[V]) root() *node[V]          { return t.header.parent }
func (t *Tree[V]) setRoot(n *node[V])      { t.header.parent = n }
func (t *Tree[V]) leftmost() *node[V]      { return t.header.left }
func (t *Tree[V]) setLeftmost(n *node[V])  { t.header.left = n }
func (t *Tree[V]) rightmost() *node[V]     { return t.header.right }
func (t *Tree[V]) setRightmost(n *node[V]) { t.header.right = n }

func (t *Tree[V]) iterAt(n *node[V]) *Iterator[V] {
	return &Iterator[V]{node: n, header: t.header}
}

// Begin returns an iterator to the leftmost (in-order first) value.
func (t *Tree[V]) Begin() *Iterator[V] { return t.iterAt(t.leftmost()) }

// End returns the past-the-end iterator.
func (t *Tree[V]) End() *Iterator[V] { return t.iterAt(t.header) }

// Values collects every stored value via in-order traversal.
func (t *Tree[V]) Values() []V {
	out := make([]V, 0, t.size)
	for it := t.Begin(); it.Valid(); it = it.Next() {
		out = append(out, it.Value())
	}
	return out
}

// Distance computes the tree's configured Distancer between two values,
// independent of tree structure. No query of the tree calls it:
// FindNearest always scores and prunes with Euclidean distance (see
// findNearest).
func (t *Tree[V]) Distance(a, b V) float64 {
	return t.dist.Distance(t.accessor, a, b, t.k)
}

// Clear removes every value, freeing every node. Afterwards the tree is
// indistinguishable from a freshly constructed one.
func (t *Tree[V]) Clear() {
	eraseSubtree(t.root())
	t.setLeftmost(t.header)
	t.setRightmost(t.header)
	t.setRoot(nil)
	t.size = 0
}

func eraseSubtree[V any](n *node[V]) {
	for n != nil {
		eraseSubtree(n.right)
		left := n.left
		n.left, n.right, n.parent = nil, nil, nil
		n = left
	}
}

// Copy returns an independent tree holding the same values, rebalanced by
// Optimise, matching the reference container's copy semantics.
func (t *Tree[V]) Copy() (*Tree[V], error) {
	nt := New(t.k, t.accessor)
	nt.cmp = t.cmp
	nt.dist = t.dist
	nt.alloc = t.alloc
	for it := t.Begin(); it.Valid(); it = it.Next() {
		if _, err := nt.Insert(it.Value()); err != nil {
			return nil, err
		}
	}
	if err := nt.Optimise(); err != nil {
		return nil, err
	}
	return nt, nil
}

// Insert copies v into a new node and returns an iterator to it.
func (t *Tree[V]) Insert(v V) (*Iterator[V], error) {
	if t.alloc != nil {
		if err := t.alloc(); err != nil {
			return nil, fmt.Errorf("kdtree: allocate node: %w", err)
		}
	}

	if t.root() == nil {
		n := &node[V]{value: v, parent: t.header}
		t.setRoot(n)
		t.setLeftmost(n)
		t.setRightmost(n)
		t.size++
		return t.iterAt(n), nil
	}

	n := t.insert(t.root(), v, 0)
	t.size++
	return t.iterAt(n), nil
}

func (t *Tree[V]) insert(n *node[V], v V, depth int) *node[V] {
	d := depth % t.k
	if t.axisLess(d, v, n.value) {
		if n.left == nil {
			return t.insertLeft(n, v)
		}
		return t.insert(n.left, v, depth+1)
	}
	if n.right == nil || n == t.rightmost() {
		return t.insertRight(n, v)
	}
	return t.insert(n.right, v, depth+1)
}

func (t *Tree[V]) insertLeft(n *node[V], v V) *node[V] {
	c := &node[V]{value: v, parent: n}
	n.left = c
	if n == t.leftmost() {
		t.setLeftmost(c)
	}
	return c
}

func (t *Tree[V]) insertRight(n *node[V], v V) *node[V] {
	c := &node[V]{value: v, parent: n}
	n.right = c
	if n == t.rightmost() {
		t.setRightmost(c)
	}
	return c
}

// Erase removes one node equal to v, if any, and reports whether it found
// one to remove.
func (t *Tree[V]) Erase(v V) bool {
	it := t.Find(v)
	if !it.Valid() {
		return false
	}
	t.EraseIterator(it)
	return true
}

// EraseIterator removes the node it points to. it is left pointing at a
// now-dangling node; do not reuse it afterwards. Erasing End() is a no-op.
func (t *Tree[V]) EraseIterator(it *Iterator[V]) {
	if it == nil || !it.Valid() {
		return
	}
	n := it.node
	depth := 0
	for p := n.parent; p != t.header; p = p.parent {
		depth++
	}
	t.eraseAt(n, depth)
	t.size--
}

// eraseAt removes n, known to sit at depth, and splices in its
// erase-replacement.
func (t *Tree[V]) eraseAt(n *node[V], depth int) *node[V] {
	return t.eraseReplace(n, t.getEraseReplacement(n, depth))
}

// getEraseReplacement finds the node that should occupy n's slot so the
// partitioning invariant holds at every level, recursively erases it from
// its original position, and returns it (or nil if n was a leaf).
func (t *Tree[V]) getEraseReplacement(n *node[V], depth int) *node[V] {
	if isLeaf(n) {
		return nil
	}

	var ret *node[V]
	j := depth
	switch {
	case n.left == nil:
		ret = t.getMin(n.right, &j, depth+1)
	case n.right == nil:
		ret = t.getMax(n.left, &j, depth+1)
	default:
		d := depth % t.k
		if t.axisLess(d, n.right.value, n.left.value) {
			ret = t.getMin(n.right, &j, depth+1)
		} else {
			ret = t.getMax(n.left, &j, depth+1)
		}
	}

	p := ret.parent
	if p.left == ret {
		p.left = t.eraseAt(ret, j)
	} else {
		p.right = t.eraseAt(ret, j)
	}
	return ret
}

// getMin returns the node with the smallest axis-d coordinate in the
// subtree rooted at n, where d is the axis active when the search
// started; it descends both children at every level because axis
// alternation means the extremum is not localized to one branch. *j is
// set to the depth at which the returned node sits.
func (t *Tree[V]) getMin(n *node[V], j *int, depth int) *node[V] {
	if isLeaf(n) {
		*j = depth
		return n
	}
	axis := *j
	d := axis % t.k
	ret, retDepth := n, depth
	if n.left != nil {
		lj := axis
		if l := t.getMin(n.left, &lj, depth+1); t.axisLess(d, l.value, ret.value) {
			ret, retDepth = l, lj
		}
	}
	if n.right != nil {
		rj := axis
		if r := t.getMin(n.right, &rj, depth+1); t.axisLess(d, r.value, ret.value) {
			ret, retDepth = r, rj
		}
	}
	*j = retDepth
	return ret
}

// getMax mirrors getMin for the largest axis-d coordinate.
func (t *Tree[V]) getMax(n *node[V], j *int, depth int) *node[V] {
	if isLeaf(n) {
		*j = depth
		return n
	}
	axis := *j
	d := axis % t.k
	ret, retDepth := n, depth
	if n.left != nil {
		lj := axis
		if l := t.getMax(n.left, &lj, depth+1); t.axisLess(d, ret.value, l.value) {
			ret, retDepth = l, lj
		}
	}
	if n.right != nil {
		rj := axis
		if r := t.getMax(n.right, &rj, depth+1); t.axisLess(d, ret.value, r.value) {
			ret, retDepth = r, rj
		}
	}
	*j = retDepth
	return ret
}

// eraseReplace splices q into n's slot (adopting n's parent and children)
// and fixes up root/leftmost/rightmost if n was one of them. q may be nil
// when n was a leaf.
func (t *Tree[V]) eraseReplace(n, q *node[V]) *node[V] {
	if q != nil {
		q.parent = n.parent
		q.left = n.left
		if q.left != nil {
			q.left.parent = q
		}
		q.right = n.right
		if q.right != nil {
			q.right.parent = q
		}
	}

	if n == t.root() {
		t.setRoot(q)
	} else if n.parent.left == n {
		n.parent.left = q
	} else {
		n.parent.right = q
	}

	if n == t.leftmost() {
		if q != nil {
			t.setLeftmost(q)
		} else {
			t.setLeftmost(n.parent)
		}
	}
	if n == t.rightmost() {
		if q != nil {
			t.setRightmost(q)
		} else {
			t.setRightmost(n.parent)
		}
	}
	return q
}

// Find returns an iterator to a node equal to v on every axis, or End()
// if none matches.
func (t *Tree[V]) Find(v V) *Iterator[V] {
	if t.root() == nil {
		return t.End()
	}
	return t.find(t.root(), v, 0)
}

func (t *Tree[V]) find(n *node[V], v V, depth int) *Iterator[V] {
	d := depth % t.k
	if t.axisLess(d, v, n.value) {
		if n.left != nil {
			return t.find(n.left, v, depth+1)
		}
		return t.End()
	}
	if !t.axisLess(d, n.value, v) && t.matchesOtherAxes(n, v, d) {
		return t.iterAt(n)
	}
	if n.right != nil {
		return t.find(n.right, v, depth+1)
	}
	return t.End()
}

func (t *Tree[V]) matchesOtherAxes(n *node[V], v V, d int) bool {
	for i := (d + 1) % t.k; i != d; i = (i + 1) % t.k {
		if !t.axisEqual(i, n.value, v) {
			return false
		}
	}
	return true
}

// CountWithinRange reports how many stored values lie within radius r of
// v (a box of side 2r centered on v, per Region's value+radius
// constructor).
func (t *Tree[V]) CountWithinRange(v V, r float64) int {
	if t.root() == nil {
		return 0
	}
	return t.CountWithinRegion(RadiusRegion(v, r, t.k, t.accessor, t.cmp))
}

// CountWithinRegion reports how many stored values the region encloses.
func (t *Tree[V]) CountWithinRegion(region Region[V]) int {
	if t.root() == nil {
		return 0
	}
	return t.countWithinRange(t.root(), region, region.Bounds, 0)
}

func (t *Tree[V]) countWithinRange(n *node[V], region Region[V], bounds Bounds, depth int) int {
	count := 0
	if region.Encloses(n.value) {
		count++
	}

	d := depth % t.k
	if n.left != nil {
		b := bounds.Clone()
		b.SetHighBound(t.accessor(n.value, d), d)
		if region.IntersectsWithBounds(b) {
			count += t.countWithinRange(n.left, region, b, depth+1)
		}
	}
	if n.right != nil {
		b := bounds.Clone()
		b.SetLowBound(t.accessor(n.value, d), d)
		if region.IntersectsWithBounds(b) {
			count += t.countWithinRange(n.right, region, b, depth+1)
		}
	}
	return count
}

// FindWithinRange returns every stored value within radius r of v.
func (t *Tree[V]) FindWithinRange(v V, r float64) []V {
	if t.root() == nil {
		return nil
	}
	return t.FindWithinRegion(RadiusRegion(v, r, t.k, t.accessor, t.cmp))
}

// FindWithinRegion returns every stored value the region encloses.
func (t *Tree[V]) FindWithinRegion(region Region[V]) []V {
	var out []V
	t.VisitWithinRegion(region, func(v V) { out = append(out, v) })
	return out
}

// VisitWithinRegion invokes visit on every stored value the region
// encloses, in the order the pruning walk finds them.
func (t *Tree[V]) VisitWithinRegion(region Region[V], visit func(V)) {
	if t.root() == nil {
		return
	}
	t.visitWithinRange(t.root(), region, region.Bounds, 0, visit)
}

func (t *Tree[V]) visitWithinRange(n *node[V], region Region[V], bounds Bounds, depth int, visit func(V)) {
	if region.Encloses(n.value) {
		visit(n.value)
	}

	d := depth % t.k
	if n.left != nil {
		b := bounds.Clone()
		b.SetHighBound(t.accessor(n.value, d), d)
		if region.IntersectsWithBounds(b) {
			t.visitWithinRange(n.left, region, b, depth+1, visit)
		}
	}
	if n.right != nil {
		b := bounds.Clone()
		b.SetLowBound(t.accessor(n.value, d), d)
		if region.IntersectsWithBounds(b) {
			t.visitWithinRange(n.right, region, b, depth+1, visit)
		}
	}
}

// FindNearest returns the stored value closest to v within maxR, and the
// distance to it. It returns (End(), maxR) if no stored value is within
// maxR, including when the tree is empty.
func (t *Tree[V]) FindNearest(v V, maxR float64) (*Iterator[V], float64) {
	if t.root() == nil {
		return t.End(), maxR
	}

	probe := PointRegion(v, t.k, t.accessor, t.cmp)
	center := CenterProbe{Bounds: probe.Bounds, Radius: maxR}
	best, bestDistSq := t.findNearest(t.root(), center, probe.Bounds, 0)
	if dist := math.Sqrt(bestDistSq); dist <= maxR {
		return t.iterAt(best), dist
	}
	return t.End(), maxR
}

// findNearest is the shrinking-probe recursion: it scores this node with
// an inlined squared-Euclidean sum (not the configured Distancer), then
// recurses into whichever children the narrowed bounds still intersect
// the probe, re-tightening the probe's radius to the best Euclidean
// distance found so far between the two sides so the right branch
// benefits from anything the left branch already found.
func (t *Tree[V]) findNearest(n *node[V], center CenterProbe, bounds Bounds, depth int) (*node[V], float64) {
	dist := 0.0
	for i := 0; i < t.k; i++ {
		delta := center.Bounds.Low[i] - t.accessor(n.value, i)
		dist += delta * delta
	}

	best := n
	bestDist := dist
	center.Radius = math.Min(center.Radius, math.Sqrt(bestDist))

	d := depth % t.k
	if n.left != nil {
		b := bounds.Clone()
		b.SetHighBound(t.accessor(n.value, d), d)
		if intersectsCenterProbe(t.cmp, b, center) {
			if ln, ld := t.findNearest(n.left, center, b, depth+1); ld < bestDist {
				best, bestDist = ln, ld
			}
		}
	}

	center.Radius = math.Min(center.Radius, math.Sqrt(bestDist))
	if n.right != nil {
		b := bounds.Clone()
		b.SetLowBound(t.accessor(n.value, d), d)
		if intersectsCenterProbe(t.cmp, b, center) {
			if rn, rd := t.findNearest(n.right, center, b, depth+1); rd < bestDist {
				best, bestDist = rn, rd
			}
		}
	}

	return best, bestDist
}

// Optimise collects every value by in-order traversal, clears the tree,
// and rebuilds it by recursive median split on the axis active at each
// depth, restoring balance after a run of incremental inserts/erases.
func (t *Tree[V]) Optimise() error {
	values := t.Values()
	t.Clear()
	return t.optimise(values, 0)
}

// Optimize is a spelling alias for Optimise.
func (t *Tree[V]) Optimize() error { return t.Optimise() }

func (t *Tree[V]) optimise(values []V, depth int) error {
	if len(values) == 0 {
		return nil
	}

	d := depth % t.k
	sort.Slice(values, func(i, j int) bool { return t.axisLess(d, values[i], values[j]) })
	mid := len(values) / 2

	if _, err := t.Insert(values[mid]); err != nil {
		return err
	}
	if err := t.optimise(values[:mid], depth+1); err != nil {
		return err
	}
	return t.optimise(values[mid+1:], depth+1)
}
