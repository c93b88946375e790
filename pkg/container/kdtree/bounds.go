package kdtree

// Bounds is an axis-aligned k-orthotope: a pair of length-K coordinate
// arrays. No invariant is enforced that Low[i] <= High[i]: the tree
// narrows a Bounds by setting one side to a node's coordinate, which can
// leave Low[i] > High[i], and the intersection tests take such a Bounds
// as it is.
type Bounds struct {
	Low  []float64
	High []float64
}

// NewBounds allocates a zero-valued Bounds for k axes.
func NewBounds(k int) Bounds {
	return Bounds{Low: make([]float64, k), High: make([]float64, k)}
}

// SetLowBound sets the low bound on axis. It is the only mutator besides
// SetHighBound.
func (b *Bounds) SetLowBound(v float64, axis int) {
	b.Low[axis] = v
}

// SetHighBound sets the high bound on axis.
func (b *Bounds) SetHighBound(v float64, axis int) {
	b.High[axis] = v
}

// Clone returns an independent copy, used before narrowing a Bounds on
// descent so sibling subtrees don't observe each other's narrowing.
func (b Bounds) Clone() Bounds {
	low := make([]float64, len(b.Low))
	high := make([]float64, len(b.High))
	copy(low, b.Low)
	copy(high, b.High)
	return Bounds{Low: low, High: high}
}
