package kdtree

// Option configures a Tree at construction time. The zero-value Tree
// built by New before any Option runs uses Less as its Comparator and
// NewEuclideanDistance as its Distancer, and has no Allocator.
type Option[V any] func(*Tree[V])

// WithComparator overrides the default "<" Comparator used to order
// coordinates on every axis.
func WithComparator[V any](cmp Comparator) Option[V] {
	return func(t *Tree[V]) {
		t.cmp = cmp
	}
}

// WithDistancer overrides the Distancer used by Tree.Distance. It does
// not affect FindNearest, which always scores and prunes with Euclidean
// distance (see the doc comment on Tree.findNearest).
func WithDistancer[V any](d Distancer[V]) Option[V] {
	return func(t *Tree[V]) {
		t.dist = d
	}
}

// WithAllocator installs a hook called once per node allocation, before
// the node is constructed. See the Allocator doc comment.
func WithAllocator[V any](a Allocator) Option[V] {
	return func(t *Tree[V]) {
		t.alloc = a
	}
}
