package kdtree

// CenterProbe is a zero-volume Bounds (a single point) paired with a
// radius. It is the shrinking target used by FindNearest: as a closer
// candidate is discovered, Radius drops so that whole subtrees whose
// Bounds fall entirely outside [point-Radius, point+Radius] on some axis
// are pruned.
type CenterProbe struct {
	Bounds Bounds
	Radius float64
}

// Region is a Bounds together with the inclusion/intersection predicates
// the range and nearest-neighbor queries prune with.
type Region[V any] struct {
	Bounds Bounds

	acc Accessor[V]
	cmp Comparator
}

// NewRegion wraps an existing Bounds as a Region.
func NewRegion[V any](b Bounds, acc Accessor[V], cmp Comparator) Region[V] {
	return Region[V]{Bounds: b, acc: acc, cmp: cmp}
}

// PointRegion returns a zero-volume Region collapsed onto v, the probe
// FindNearest starts from.
func PointRegion[V any](v V, k int, acc Accessor[V], cmp Comparator) Region[V] {
	b := NewBounds(k)
	for i := 0; i < k; i++ {
		x := acc(v, i)
		b.Low[i], b.High[i] = x, x
	}
	return NewRegion(b, acc, cmp)
}

// RadiusRegion returns the Region of the box [v[i]-r, v[i]+r] on every
// axis, the shape CountWithinRange/FindWithinRange search by radius use.
func RadiusRegion[V any](v V, r float64, k int, acc Accessor[V], cmp Comparator) Region[V] {
	b := NewBounds(k)
	for i := 0; i < k; i++ {
		x := acc(v, i)
		b.Low[i] = x - r
		b.High[i] = x + r
	}
	return NewRegion(b, acc, cmp)
}

// Encloses reports whether v lies within the region on every axis.
func (r Region[V]) Encloses(v V) bool {
	for i := range r.Bounds.Low {
		x := r.acc(v, i)
		if r.cmp(x, r.Bounds.Low[i]) || r.cmp(r.Bounds.High[i], x) {
			return false
		}
	}
	return true
}

// IntersectsWithBounds reports whether no axis separates this region
// from other: for every axis, this region's low bound is not above
// other's high bound, and other's low bound is not above this region's
// high bound.
func (r Region[V]) IntersectsWithBounds(other Bounds) bool {
	for i := range r.Bounds.Low {
		if r.cmp(other.High[i], r.Bounds.Low[i]) || r.cmp(r.Bounds.High[i], other.Low[i]) {
			return false
		}
	}
	return true
}

// IntersectsWithProbe reports whether this region intersects the given
// center probe: on every axis, the probe's point lies within
// [low-Radius, high+Radius].
func (r Region[V]) IntersectsWithProbe(c CenterProbe) bool {
	return intersectsCenterProbe(r.cmp, r.Bounds, c)
}

func intersectsCenterProbe(cmp Comparator, b Bounds, c CenterProbe) bool {
	for i := range b.Low {
		if cmp(c.Bounds.Low[i], b.Low[i]-c.Radius) || cmp(b.High[i]+c.Radius, c.Bounds.Low[i]) {
			return false
		}
	}
	return true
}
