package kdtree

// Comparator is a strict weak ordering over coordinate values, evaluated
// as "a < b". The tree's default is Less.
type Comparator func(a, b float64) bool

// Less is the default Comparator.
func Less(a, b float64) bool {
	return a < b
}

// axisLess evaluates cmp(acc(a,axis), acc(b,axis)), the axis comparator
// closure described by the partitioning invariant: at depth L, axis is
// L mod K.
func (t *Tree[V]) axisLess(axis int, a, b V) bool {
	return t.cmp(t.accessor(a, axis), t.accessor(b, axis))
}

// axisEqual reports whether neither a nor b compares strictly less than
// the other on axis, i.e. they are equal under cmp restricted to axis.
func (t *Tree[V]) axisEqual(axis int, a, b V) bool {
	return !t.axisLess(axis, a, b) && !t.axisLess(axis, b, a)
}
