// Package kdtree implements an in-memory k-dimensional binary search
// tree: a generalization of a binary search tree that partitions
// points across K axes, cycling through them one per depth level.
// Like a balanced binary tree it supports insert, erase and exact find
// in roughly O(log n) on a balanced tree; unlike one it also supports
// pruning range queries and nearest-neighbor search, since a value's
// position in the tree bounds the region of space its subtree can
// contain.
//
// A Tree does not rebalance itself as values are inserted or removed;
// call Optimise after a long run of mutations to rebuild it into a
// depth-balanced shape by recursive median split.
package kdtree
