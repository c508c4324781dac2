/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package table holds every name-indexed table the forwarding pipeline
// touches: the NameTree that interns names and anchors the other five,
// the FIB, the PIT, the Content Store, Measurements, and Strategy
// Choice. A table instance is owned by exactly one forwarding worker and
// must only be touched from that worker's goroutine.
package table

import "github.com/ndnfwd/core/ndn"

// Node is a NameTree entry: one per distinct prefix any table has ever
// referenced. Node holds non-owning back-pointers into the FIB, PIT,
// Content Store, Measurements, and Strategy Choice tables; a node stays
// alive only while at least one back-pointer is set, or it is an
// ancestor of a node that is.
//
// Grounded on pitCsTreeNode in the teacher's pit-cs-tree.go, generalized
// from "one tree per table" to the single shared tree spec.md calls for.
type Node struct {
	component ndn.Component
	name      ndn.Name
	depth     int

	parent   *Node
	children map[uint64]*Node

	fib          *FibEntry
	pitEntries   []*PitEntry
	csEntry      *CsEntry
	measurements *measurementsEntry
	strategy     ndn.Name
}

// NameTree is a hash-indexed trie of Nodes, the single place names are
// interned for a forwarding worker.
type NameTree struct {
	root *Node
}

// NewNameTree creates an empty NameTree with just its root node.
func NewNameTree() *NameTree {
	return &NameTree{root: newNode(ndn.Component{}, ndn.Name{}, 0, nil)}
}

func newNode(component ndn.Component, name ndn.Name, depth int, parent *Node) *Node {
	return &Node{
		component: component,
		name:      name,
		depth:     depth,
		parent:    parent,
		children:  make(map[uint64]*Node),
	}
}

// Name returns the full name this node represents.
func (n *Node) Name() ndn.Name { return n.name }

// Lookup returns the node for name, creating any missing ancestors and
// the node itself if absent. Mirrors fillTreeToPrefixEnc.
func (t *NameTree) Lookup(name ndn.Name) *Node {
	node := t.findLongestPrefixNode(name)
	for depth := node.depth; depth < len(name); depth++ {
		component := name.At(depth).Clone()
		child := newNode(component, name.Prefix(depth+1).Clone(), depth+1, node)
		node.children[component.Hash()] = child
		node = child
	}
	return node
}

// FindExact returns the node for name if one exists, or nil. Mirrors
// findExactMatchEntryEnc.
func (t *NameTree) FindExact(name ndn.Name) *Node {
	node := t.findLongestPrefixNode(name)
	if node.depth == len(name) {
		return node
	}
	return nil
}

// FindLongestPrefixMatch walks from the deepest node on name's path
// toward the root and returns the first node for which predicate
// returns true, or nil if none do. Used by the FIB ("has next-hops")
// and Strategy Choice ("has a strategy") lookups.
func (t *NameTree) FindLongestPrefixMatch(name ndn.Name, predicate func(*Node) bool) *Node {
	for node := t.findLongestPrefixNode(name); node != nil; node = node.parent {
		if predicate(node) {
			return node
		}
	}
	return nil
}

// findLongestPrefixNode returns the deepest existing node along name's
// path, without creating anything. Mirrors findLongestPrefixEntryEnc.
func (t *NameTree) findLongestPrefixNode(name ndn.Name) *Node {
	node := t.root
	for len(name) > node.depth {
		child, ok := node.children[name.At(node.depth).Hash()]
		if !ok {
			return node
		}
		node = child
	}
	return node
}

// isEmpty reports whether a node carries no back-pointers of its own.
func (n *Node) isEmpty() bool {
	return n.fib == nil &&
		len(n.pitEntries) == 0 &&
		n.csEntry == nil &&
		n.measurements == nil &&
		n.strategy == nil
}

// pruneIfEmpty removes n and any now-empty ancestors from the tree.
// Mirrors pruneIfEmpty in pit-cs-tree.go, generalized across all five
// back-pointer kinds.
func (n *Node) pruneIfEmpty() {
	for node := n; node.parent != nil && len(node.children) == 0 && node.isEmpty(); node = node.parent {
		delete(node.parent.children, node.component.Hash())
	}
}

// Size returns the number of nodes currently in the tree, walking the
// full trie. Intended for status snapshots, not the hot path.
func (t *NameTree) Size() int {
	count := 0
	var walk func(*Node)
	walk = func(n *Node) {
		count++
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return count
}
