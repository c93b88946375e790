package kdtree

import (
	"math"
	"sort"
	"testing"
)

func point(xs ...float64) []float64 { return xs }

func newTestTree(k int) *Tree[[]float64] {
	return New(k, SliceAccessor)
}

func collectSorted(t *Tree[[]float64]) [][]float64 {
	vs := t.Values()
	sort.Slice(vs, func(i, j int) bool {
		for d := 0; d < len(vs[i]); d++ {
			if vs[i][d] != vs[j][d] {
				return vs[i][d] < vs[j][d]
			}
		}
		return false
	})
	return vs
}

func TestTreeInsertFindErase(t *testing.T) {
	tr := newTestTree(3)

	values := [][]float64{
		{5, 4, 3},
		{2, 6, 1},
		{8, 1, 9},
		{1, 1, 1},
		{9, 9, 9},
		{4, 4, 4},
		{0, 8, 2},
	}

	for _, v := range values {
		if _, err := tr.Insert(v); err != nil {
			t.Fatalf("Insert(%v): %v", v, err)
		}
	}

	if got := tr.Len(); got != len(values) {
		t.Fatalf("Len() = %d, want %d", got, len(values))
	}
	if tr.Empty() {
		t.Fatalf("Empty() = true on a populated tree")
	}

	for _, v := range values {
		it := tr.Find(v)
		if !it.Valid() {
			t.Fatalf("Find(%v) not found", v)
		}
		if got := it.Value(); got[0] != v[0] || got[1] != v[1] || got[2] != v[2] {
			t.Fatalf("Find(%v) returned %v", v, got)
		}
	}

	if it := tr.Find([]float64{100, 100, 100}); it.Valid() {
		t.Fatalf("Find of absent value returned valid iterator")
	}

	// erase an internal node ({8,1,9} has {9,9,9} as its right child) and
	// confirm size + membership update.
	toErase := values[2]
	if !tr.Erase(toErase) {
		t.Fatalf("Erase(%v) = false, want true", toErase)
	}
	if tr.Len() != len(values)-1 {
		t.Fatalf("Len() after erase = %d, want %d", tr.Len(), len(values)-1)
	}
	if it := tr.Find(toErase); it.Valid() {
		t.Fatalf("Find still finds erased value %v", toErase)
	}
	if tr.Erase(toErase) {
		t.Fatalf("second Erase(%v) = true, want false", toErase)
	}

	remaining := make([][]float64, 0, len(values)-1)
	for _, v := range values {
		if v[0] == toErase[0] && v[1] == toErase[1] && v[2] == toErase[2] {
			continue
		}
		remaining = append(remaining, v)
	}

	got := collectSorted(tr)
	want := remaining
	sort.Slice(want, func(i, j int) bool {
		for d := 0; d < 3; d++ {
			if want[i][d] != want[j][d] {
				return want[i][d] < want[j][d]
			}
		}
		return false
	})
	if len(got) != len(want) {
		t.Fatalf("Values() length = %d, want %d", len(got), len(want))
	}
}

func TestTreeIteratorTraversal(t *testing.T) {
	tr := newTestTree(2)
	values := [][]float64{{3, 1}, {1, 2}, {5, 5}, {0, 0}, {4, 4}}
	for _, v := range values {
		if _, err := tr.Insert(v); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	var forward [][]float64
	for it := tr.Begin(); it.Valid(); it = it.Next() {
		forward = append(forward, it.Value())
	}
	if len(forward) != len(values) {
		t.Fatalf("forward traversal length = %d, want %d", len(forward), len(values))
	}

	var backward [][]float64
	for it := tr.End().Prev(); ; it = it.Prev() {
		backward = append(backward, it.Value())
		if it.Equal(tr.Begin()) {
			break
		}
	}
	if len(backward) != len(values) {
		t.Fatalf("backward traversal length = %d, want %d", len(backward), len(values))
	}

	for i := range forward {
		rev := backward[len(backward)-1-i]
		if forward[i][0] != rev[0] || forward[i][1] != rev[1] {
			t.Fatalf("forward/backward mismatch at %d: %v vs %v", i, forward[i], rev)
		}
	}
}

func TestTreeCountAndFindWithinRange(t *testing.T) {
	tr := newTestTree(2)
	for x := 0.0; x < 5; x++ {
		for y := 0.0; y < 5; y++ {
			if _, err := tr.Insert([]float64{x, y}); err != nil {
				t.Fatalf("Insert: %v", err)
			}
		}
	}

	center := []float64{2, 2}
	count := tr.CountWithinRange(center, 1)
	// box [1,3]x[1,3] inclusive -> 3x3 = 9 points
	if count != 9 {
		t.Fatalf("CountWithinRange = %d, want 9", count)
	}

	found := tr.FindWithinRange(center, 1)
	if len(found) != count {
		t.Fatalf("FindWithinRange length = %d, want %d", len(found), count)
	}
	for _, v := range found {
		if math.Abs(v[0]-2) > 1 || math.Abs(v[1]-2) > 1 {
			t.Fatalf("FindWithinRange returned out-of-range value %v", v)
		}
	}
}

func TestTreeFindNearest(t *testing.T) {
	tr := newTestTree(2)
	values := [][]float64{{0, 0}, {10, 10}, {3, 3}, {7, 2}, {2, 8}}
	for _, v := range values {
		if _, err := tr.Insert(v); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	it, dist := tr.FindNearest([]float64{3, 4}, 100)
	if !it.Valid() {
		t.Fatalf("FindNearest returned End()")
	}
	got := it.Value()
	if got[0] != 3 || got[1] != 3 {
		t.Fatalf("FindNearest = %v, want {3,3}", got)
	}
	wantDist := math.Sqrt(1)
	if math.Abs(dist-wantDist) > 1e-9 {
		t.Fatalf("FindNearest distance = %f, want %f", dist, wantDist)
	}
}

func TestTreeFindNearestEmpty(t *testing.T) {
	tr := newTestTree(2)
	it, dist := tr.FindNearest([]float64{0, 0}, 5)
	if it.Valid() {
		t.Fatalf("FindNearest on empty tree returned valid iterator")
	}
	if dist != 5 {
		t.Fatalf("FindNearest on empty tree distance = %f, want 5", dist)
	}
}

func TestTreeOptimise(t *testing.T) {
	tr := newTestTree(2)
	var values [][]float64
	for i := 0; i < 20; i++ {
		v := []float64{float64(i % 7), float64((i * 3) % 11)}
		values = append(values, v)
		if _, err := tr.Insert(v); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	if err := tr.Optimise(); err != nil {
		t.Fatalf("Optimise: %v", err)
	}
	if tr.Len() != len(values) {
		t.Fatalf("Len() after Optimise = %d, want %d", tr.Len(), len(values))
	}

	for _, v := range values {
		if it := tr.Find(v); !it.Valid() {
			t.Fatalf("Find(%v) failed after Optimise", v)
		}
	}

	if err := tr.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if tr.Len() != len(values) {
		t.Fatalf("Len() after Optimize = %d, want %d", tr.Len(), len(values))
	}
}

func TestTreeCopy(t *testing.T) {
	tr := newTestTree(2)
	values := [][]float64{{1, 1}, {2, 2}, {3, 3}, {0, 5}}
	for _, v := range values {
		if _, err := tr.Insert(v); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	cp, err := tr.Copy()
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if cp.Len() != tr.Len() {
		t.Fatalf("Copy Len() = %d, want %d", cp.Len(), tr.Len())
	}
	for _, v := range values {
		if it := cp.Find(v); !it.Valid() {
			t.Fatalf("Copy missing value %v", v)
		}
	}

	// mutating the copy must not affect the original.
	cp.Erase(values[0])
	if !tr.Find(values[0]).Valid() {
		t.Fatalf("original tree lost value %v after mutating the copy", values[0])
	}
}

func TestTreeClear(t *testing.T) {
	tr := newTestTree(2)
	tr.Insert([]float64{1, 1})
	tr.Insert([]float64{2, 2})
	tr.Clear()

	if !tr.Empty() {
		t.Fatalf("Empty() = false after Clear")
	}
	if tr.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", tr.Len())
	}
	if it := tr.Begin(); it.Valid() {
		t.Fatalf("Begin() valid after Clear")
	}

	if _, err := tr.Insert([]float64{9, 9}); err != nil {
		t.Fatalf("Insert after Clear: %v", err)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() after re-Insert = %d, want 1", tr.Len())
	}
}

func TestTreeAllocatorError(t *testing.T) {
	wantErr := errBoom
	tr := New(2, SliceAccessor, WithAllocator[[]float64](func() error { return wantErr }))

	_, err := tr.Insert([]float64{1, 1})
	if err == nil {
		t.Fatalf("Insert with failing Allocator returned nil error")
	}
	if tr.Len() != 0 {
		t.Fatalf("Len() after failed Insert = %d, want 0", tr.Len())
	}
}

func TestTreeWithComparatorAndDistancer(t *testing.T) {
	greater := func(a, b float64) bool { return a > b }
	tr := New(2, SliceAccessor,
		WithComparator[[]float64](greater),
		WithDistancer[[]float64](NewManhattanDistance[[]float64]()))

	for _, v := range [][]float64{{1, 1}, {5, 5}, {3, 3}} {
		if _, err := tr.Insert(v); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	if it := tr.Find([]float64{3, 3}); !it.Valid() {
		t.Fatalf("Find with reversed Comparator failed")
	}

	d := tr.Distance([]float64{0, 0}, []float64{3, 4})
	if d != 7 {
		t.Fatalf("Distance with Manhattan Distancer = %f, want 7", d)
	}
}

var errBoom = &testAllocError{}

type testAllocError struct{}

func (*testAllocError) Error() string { return "allocation failed" }
