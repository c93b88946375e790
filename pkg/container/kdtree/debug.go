package kdtree

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Debug gates Tree.Dump. It is off by default; the demo binary sets it
// from its KDTREE_DEBUG setting.
var Debug = false

// Dump writes every stored value, in pre-order, to w via go-spew. It
// dumps only each node's value, never the node itself: node.parent
// pointers form cycles (parent.child.parent == parent) that spew has no
// guard against. Dump is a no-op unless Debug is true.
func (t *Tree[V]) Dump(w io.Writer) {
	if !Debug {
		return
	}

	stack := make([]*node[V], 0, t.size)
	if t.root() != nil {
		stack = append(stack, t.root())
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		spew.Fdump(w, n.value)

		if n.right != nil {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
}
