/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"sort"

	"github.com/ndnfwd/core/ndn"
)

// NextHop is a single next-hop in a FIB entry: a face plus its routing
// cost and flags. Grounded on the teacher's FibNextHopEntry, with Flags
// added per spec.md's FIB entry data model.
type NextHop struct {
	FaceID uint64
	Cost   uint64
	Flags  uint64
}

// FibEntry is a FIB entry anchored at a NameTree node: a set of
// next-hops unique by face ID.
type FibEntry struct {
	node     *Node
	nexthops []NextHop
}

// Prefix returns the name this FIB entry is registered for.
func (e *FibEntry) Prefix() ndn.Name { return e.node.name }

// NextHops returns the entry's next-hops, ascending by cost and
// tie-broken by face ID, matching the teacher's
// sort.Slice(nexthops, ... Cost ...) in bestroute.go.
func (e *FibEntry) NextHops() []NextHop {
	out := append([]NextHop{}, e.nexthops...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return out[i].FaceID < out[j].FaceID
	})
	return out
}

// Fib is the longest-prefix next-hop table, addressed through a shared
// NameTree per spec.md §4.1/§4.2.
type Fib struct {
	tree *NameTree
}

// NewFib creates a FIB backed by the given NameTree.
func NewFib(tree *NameTree) *Fib {
	return &Fib{tree: tree}
}

func hasNextHops(n *Node) bool {
	return n != nil && n.fib != nil && len(n.fib.nexthops) > 0
}

// Insert returns the FIB entry for prefix, creating an empty one if
// absent.
func (f *Fib) Insert(prefix ndn.Name) *FibEntry {
	node := f.tree.Lookup(prefix)
	if node.fib == nil {
		node.fib = &FibEntry{node: node}
	}
	return node.fib
}

// Erase removes the FIB entry for prefix, if any.
func (f *Fib) Erase(prefix ndn.Name) {
	node := f.tree.FindExact(prefix)
	if node == nil || node.fib == nil {
		return
	}
	node.fib = nil
	node.pruneIfEmpty()
}

// FindLongestPrefixMatch returns the FIB entry with the longest prefix
// matching name that has at least one next-hop. If none matches, it
// returns the root's entry (possibly empty), per spec.md §4.2's
// guarantee that LPM never returns nil.
func (f *Fib) FindLongestPrefixMatch(name ndn.Name) *FibEntry {
	node := f.tree.FindLongestPrefixMatch(name, hasNextHops)
	if node == nil || node.fib == nil {
		return &FibEntry{node: f.tree.root}
	}
	return node.fib
}

// AddNextHop inserts or updates a next-hop on entry, keeping next-hops
// unique by face ID.
func (e *FibEntry) AddNextHop(faceID uint64, cost uint64, flags uint64) {
	for i := range e.nexthops {
		if e.nexthops[i].FaceID == faceID {
			e.nexthops[i].Cost = cost
			e.nexthops[i].Flags = flags
			return
		}
	}
	e.nexthops = append(e.nexthops, NextHop{FaceID: faceID, Cost: cost, Flags: flags})
}

// RemoveNextHop removes the next-hop for faceID, if present, and prunes
// the entry's node if it becomes empty.
func (e *FibEntry) RemoveNextHop(faceID uint64) {
	for i, nh := range e.nexthops {
		if nh.FaceID == faceID {
			e.nexthops = append(e.nexthops[:i], e.nexthops[i+1:]...)
			break
		}
	}
	if len(e.nexthops) == 0 {
		e.node.fib = nil
		e.node.pruneIfEmpty()
	}
}

// RemoveFace removes faceID from every FIB entry in the tree. Invoked
// by the face-down cascade in spec.md §7.
func (f *Fib) RemoveFace(faceID uint64) {
	var walk func(*Node)
	walk = func(n *Node) {
		if n.fib != nil {
			n.fib.RemoveNextHop(faceID)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(f.tree.root)
}

// Size returns the number of FIB entries in the tree. Walks the whole
// trie; intended for status snapshots, not the hot path.
func (f *Fib) Size() int {
	count := 0
	var walk func(*Node)
	walk = func(n *Node) {
		if n.fib != nil {
			count++
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(f.tree.root)
	return count
}
