/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndnfwd/core/ndn"
)

func TestNameTreeLookupCreatesAncestors(t *testing.T) {
	tree := NewNameTree()
	name := ndn.NameFromString("/a/b/c")

	node := tree.Lookup(name)
	assert.True(t, node.Name().Equal(name))
	assert.Equal(t, 4, tree.Size()) // root + a + a/b + a/b/c

	// Looking up again must not create new nodes.
	again := tree.Lookup(name)
	assert.Same(t, node, again)
	assert.Equal(t, 4, tree.Size())
}

func TestNameTreeFindExact(t *testing.T) {
	tree := NewNameTree()
	name := ndn.NameFromString("/a/b")
	tree.Lookup(name)

	assert.NotNil(t, tree.FindExact(name))
	assert.Nil(t, tree.FindExact(ndn.NameFromString("/a/b/c")))
	assert.NotNil(t, tree.FindExact(ndn.NameFromString("/a")), "Lookup creates the ancestors of name as well")
}

func TestNameTreeFindLongestPrefixMatch(t *testing.T) {
	tree := NewNameTree()
	root := tree.Lookup(ndn.Name{})
	root.fib = &FibEntry{node: root}

	mid := tree.Lookup(ndn.NameFromString("/a/b"))
	mid.fib = &FibEntry{node: mid, nexthops: []NextHop{{FaceID: 1}}}

	leaf := ndn.NameFromString("/a/b/c/d")
	got := tree.FindLongestPrefixMatch(leaf, hasNextHops)
	assert.Same(t, mid, got)
}

func TestNameTreePruneIfEmpty(t *testing.T) {
	tree := NewNameTree()
	name := ndn.NameFromString("/a/b/c")
	node := tree.Lookup(name)
	node.csEntry = &CsEntry{node: node}

	assert.Equal(t, 4, tree.Size())

	node.csEntry = nil
	node.pruneIfEmpty()

	assert.Equal(t, 1, tree.Size(), "emptying the only back-pointer should prune the whole branch")
}

func TestNameTreePruneStopsAtNonEmptyAncestor(t *testing.T) {
	tree := NewNameTree()
	mid := tree.Lookup(ndn.NameFromString("/a/b"))
	mid.fib = &FibEntry{node: mid}

	leaf := tree.Lookup(ndn.NameFromString("/a/b/c"))
	leaf.csEntry = &CsEntry{node: leaf}
	leaf.csEntry = nil
	leaf.pruneIfEmpty()

	assert.NotNil(t, tree.FindExact(ndn.NameFromString("/a/b")), "ancestor with its own back-pointer must survive")
	assert.Nil(t, tree.FindExact(ndn.NameFromString("/a/b/c")))
}
