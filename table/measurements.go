/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"github.com/cornelk/hashmap"

	"github.com/ndnfwd/core/ndn"
)

// measurementsEntry is per-node strategy scratch space, backed by a
// lock-free hash map so a strategy's own goroutine-free bookkeeping
// (retransmission counters, RTT EWMAs) never needs its own locking.
// Grounded on the teacher's global `measurements` type in
// measurements.go, rescoped from one table for the whole forwarder to
// one table per NameTree node.
type measurementsEntry struct {
	node  *Node
	table hashmap.HashMap
}

// Get returns the value stored at key, or nil if unset.
func (e *measurementsEntry) Get(key string) any {
	value, ok := e.table.GetStringKey(key)
	if !ok {
		return nil
	}
	return value
}

// Set atomically stores value at key only if the current value equals
// expected, returning whether the swap took effect. Mirrors the
// teacher's measurements.Set compare-and-swap.
func (e *measurementsEntry) Set(key string, expected, value any) bool {
	return e.table.Cas(key, expected, value)
}

// AddToInt adds delta to the int stored at key, initializing it to
// delta if unset. Mirrors measurements.AddToInt's CAS retry loop.
func (e *measurementsEntry) AddToInt(key string, delta int) {
	for {
		if expected := e.Get(key); expected != nil {
			if e.Set(key, expected, expected.(int)+delta) {
				return
			}
			continue
		}
		if _, loaded := e.table.GetOrInsert(key, delta); !loaded {
			return
		}
	}
}

// AddSampleToEWMA folds measurement into the exponentially weighted
// moving average stored at key with smoothing factor alpha. Mirrors
// measurements.AddSampleToEWMA.
func (e *measurementsEntry) AddSampleToEWMA(key string, measurement, alpha float64) {
	for {
		if expected := e.Get(key); expected != nil {
			next := measurement + alpha*(measurement-expected.(float64))
			if e.Set(key, expected, next) {
				return
			}
			continue
		}
		if _, loaded := e.table.GetOrInsert(key, measurement); !loaded {
			return
		}
	}
}

// Measurements is the per-worker Measurements table, addressed through
// the shared NameTree per spec.md §4.5.
type Measurements struct {
	tree *NameTree
}

// NewMeasurements creates a Measurements table backed by tree.
func NewMeasurements(tree *NameTree) *Measurements {
	return &Measurements{tree: tree}
}

// Get returns the measurements entry at name if one exists, or nil.
func (m *Measurements) Get(name ndn.Name) *measurementsEntry {
	node := m.tree.FindExact(name)
	if node == nil {
		return nil
	}
	return node.measurements
}

// GetOrCreate returns the measurements entry at name, creating an
// empty one (and any missing ancestors) if absent.
func (m *Measurements) GetOrCreate(name ndn.Name) *measurementsEntry {
	node := m.tree.Lookup(name)
	if node.measurements == nil {
		node.measurements = &measurementsEntry{node: node}
	}
	return node.measurements
}

// Erase removes the measurements entry at name, if any.
func (m *Measurements) Erase(name ndn.Name) {
	node := m.tree.FindExact(name)
	if node == nil || node.measurements == nil {
		return
	}
	node.measurements = nil
	node.pruneIfEmpty()
}

// Size returns the number of Measurements entries in the tree. Walks
// the whole trie; intended for status snapshots, not the hot path.
func (m *Measurements) Size() int {
	count := 0
	var walk func(*Node)
	walk = func(n *Node) {
		if n.measurements != nil {
			count++
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(m.tree.root)
	return count
}
