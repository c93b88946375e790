package kdtree

import (
	"math"

	"github.com/nvmd/libkdtree/internal/geom"
)

// Distancer computes distance between two stored values. Distance is the
// full K-axis distance; ProjDistance is the single-axis projected
// distance (|a[axis]-b[axis]|). Tree.Distance calls Distance; the tree's
// queries call neither (FindNearest uses an inlined Euclidean sum).
type Distancer[V any] interface {
	Distance(acc Accessor[V], a, b V, k int) float64
	ProjDistance(acc Accessor[V], a, b V, axis int) float64
}

type euclideanDistance[V any] struct{}

// NewEuclideanDistance is the default Distancer: a two-pass
// overflow-avoiding Euclidean metric. The first pass finds
// w = max|a[i]-b[i]|; if w is zero the points coincide and distance is
// zero; otherwise the second pass computes w * sqrt(sum((delta/w)^2)),
// which never squares a raw coordinate delta.
func NewEuclideanDistance[V any]() Distancer[V] {
	return euclideanDistance[V]{}
}

func (euclideanDistance[V]) Distance(acc Accessor[V], a, b V, k int) float64 {
	w := 0.0
	for i := 0; i < k; i++ {
		c := math.Abs(acc(a, i) - acc(b, i))
		if c > w {
			w = c
		}
	}
	if w == 0 {
		return 0
	}

	r := 0.0
	for i := 0; i < k; i++ {
		x := math.Abs(acc(a, i)-acc(b, i)) / w
		r += x * x
	}
	return w * math.Sqrt(r)
}

func (euclideanDistance[V]) ProjDistance(acc Accessor[V], a, b V, axis int) float64 {
	return math.Abs(acc(a, axis) - acc(b, axis))
}

type manhattanDistance[V any] struct{}

// NewManhattanDistance is a Distancer computing Σ|a[i]-b[i]|. Overflow is
// acknowledged and accepted, matching the reference design.
func NewManhattanDistance[V any]() Distancer[V] {
	return manhattanDistance[V]{}
}

func (manhattanDistance[V]) Distance(acc Accessor[V], a, b V, k int) float64 {
	va, vb := projectAll(acc, a, b, k)
	d, _ := geom.ManhattanDistance(va, vb) // va, vb always equal length
	return d
}

func (manhattanDistance[V]) ProjDistance(acc Accessor[V], a, b V, axis int) float64 {
	return math.Abs(acc(a, axis) - acc(b, axis))
}

type chebyshevDistance[V any] struct{}

// NewChebyshevDistance is a supplemental Distancer (max|a[i]-b[i]|), not
// required by the Euclidean/Manhattan pair but a direct, already-tested
// reuse of internal/geom.ChebyshevDistance.
func NewChebyshevDistance[V any]() Distancer[V] {
	return chebyshevDistance[V]{}
}

func (chebyshevDistance[V]) Distance(acc Accessor[V], a, b V, k int) float64 {
	va, vb := projectAll(acc, a, b, k)
	d, _ := geom.ChebyshevDistance(va, vb)
	return d
}

func (chebyshevDistance[V]) ProjDistance(acc Accessor[V], a, b V, axis int) float64 {
	return math.Abs(acc(a, axis) - acc(b, axis))
}

func projectAll[V any](acc Accessor[V], a, b V, k int) ([]float64, []float64) {
	va := make([]float64, k)
	vb := make([]float64, k)
	for i := 0; i < k; i++ {
		va[i] = acc(a, i)
		vb[i] = acc(b, i)
	}
	return va, vb
}
