/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/ndnfwd/core/ndn"
)

// CsReplacementPolicy is a Content Store cache eviction policy.
// Grounded on the teacher's CsReplacementPolicy interface.
type CsReplacementPolicy interface {
	AfterInsert(index uint64, wire []byte, data *ndn.Data)
	AfterRefresh(index uint64, wire []byte, data *ndn.Data)
	BeforeErase(index uint64, wire []byte)
	BeforeUse(index uint64, wire []byte)
	EvictEntries()
}

// CsEntry is a cached Data packet, anchored at a NameTree node for
// prefix-match lookup.
type CsEntry struct {
	node      *Node
	index     uint64
	staleTime time.Time
	data      *ndn.Data
	wire      []byte
}

func (e *CsEntry) Index() uint64         { return e.index }
func (e *CsEntry) StaleTime() time.Time  { return e.staleTime }
func (e *CsEntry) Data() *ndn.Data       { return e.data }
func (e *CsEntry) Copy() (*ndn.Data, []byte) {
	return e.data, e.wire
}

// ContentStore is the forwarder's Data cache, addressed through the
// shared NameTree for prefix matching, plus an optional second index
// for pure exact-match lookups. Grounded on the teacher's PitCsTree
// InsertData/FindMatchingDataFromCS, split out of the combined
// PIT/CS type the teacher uses.
type ContentStore struct {
	tree *NameTree

	capacity int
	policy   CsReplacementPolicy
	nEntries int

	admit            bool
	serve            bool
	admitUnsolicited bool

	byIndex map[uint64]*CsEntry

	exact         map[uint64]*CsEntry
	exactCapacity int
	exactPolicy   CsReplacementPolicy
}

// NewPolicy builds a CsReplacementPolicy bound to an eviction callback;
// registered by name so ContentStore can construct one per index
// without the index knowing the policy's concrete type. "lru" is the
// only policy registered today, matching the teacher's default.
type NewPolicy func(evict func(index uint64)) CsReplacementPolicy

// LRUPolicy is the default, and so far only, replacement policy.
func LRUPolicy(evict func(index uint64)) CsReplacementPolicy {
	return NewCsLRU(evict)
}

// NewContentStore creates a ContentStore backed by tree, with capacity
// entries maintained under the policy newPolicy builds. If
// exactCapacity is positive, a second, independent exact-match index
// is also maintained, under the same policy kind.
func NewContentStore(tree *NameTree, capacity int, newPolicy NewPolicy, exactCapacity int) *ContentStore {
	if newPolicy == nil {
		newPolicy = LRUPolicy
	}
	cs := &ContentStore{
		tree:             tree,
		capacity:         capacity,
		admit:            true,
		serve:            true,
		admitUnsolicited: false,
		exactCapacity:    exactCapacity,
		byIndex:          make(map[uint64]*CsEntry),
	}
	cs.policy = newPolicy(cs.eraseFromPolicy)
	if lru, ok := cs.policy.(*CsLRU); ok {
		lru.SetCapacity(capacity)
	}
	if exactCapacity > 0 {
		cs.exact = make(map[uint64]*CsEntry)
		cs.exactPolicy = newPolicy(cs.eraseExact)
		if lru, ok := cs.exactPolicy.(*CsLRU); ok {
			lru.SetCapacity(exactCapacity)
		}
	}
	return cs
}

func (cs *ContentStore) SetAdmit(v bool)            { cs.admit = v }
func (cs *ContentStore) SetServe(v bool)            { cs.serve = v }
func (cs *ContentStore) SetAdmitUnsolicited(v bool) { cs.admitUnsolicited = v }
func (cs *ContentStore) IsAdmitting() bool          { return cs.admit }
func (cs *ContentStore) IsServing() bool            { return cs.serve }
func (cs *ContentStore) AdmitsUnsolicited() bool    { return cs.admitUnsolicited }
func (cs *ContentStore) Size() int                  { return cs.nEntries }

// exactKey derives the exact-match index key from the full name alone;
// no implicit digest is computed or folded in, so two Data packets with
// the same name share one key.
func exactKey(data *ndn.Data) uint64 {
	return data.Name.Hash() ^ 0x9e3779b97f4a7c15
}

// InsertData inserts data (with its already-encoded wire form) into the
// Content Store, refreshing an existing entry at the same name if one
// is present, and evicting per policy if over capacity. Grounded on
// PitCsTree.InsertData.
func (cs *ContentStore) InsertData(data *ndn.Data, wire []byte) {
	if cs.admit {
		node := cs.tree.Lookup(data.Name)
		stale := staleTime(data)

		if node.csEntry != nil {
			node.csEntry.staleTime = stale
			node.csEntry.data = data
			node.csEntry.wire = wire
			cs.policy.AfterRefresh(node.csEntry.index, wire, data)
		} else {
			entry := &CsEntry{node: node, index: data.Name.Hash(), staleTime: stale, data: data, wire: wire}
			node.csEntry = entry
			cs.byIndex[entry.index] = entry
			cs.nEntries++
			cs.policy.AfterInsert(entry.index, wire, data)
		}
		cs.policy.EvictEntries()
	}

	if cs.exact != nil {
		key := exactKey(data)
		stale := staleTime(data)
		if entry, ok := cs.exact[key]; ok {
			entry.staleTime = stale
			entry.data = data
			entry.wire = wire
			cs.exactPolicy.AfterRefresh(key, wire, data)
		} else {
			entry := &CsEntry{index: key, staleTime: stale, data: data, wire: wire}
			cs.exact[key] = entry
			cs.exactPolicy.AfterInsert(key, wire, data)
		}
		cs.exactPolicy.EvictEntries()
	}
}

func staleTime(data *ndn.Data) time.Time {
	if data.MetaInfo.FreshnessPeriod <= 0 {
		return time.Time{}
	}
	return time.Now().Add(data.MetaInfo.FreshnessPeriod)
}

func fresh(e *CsEntry) bool {
	return e.staleTime.IsZero() || time.Now().Before(e.staleTime)
}

// FindExact looks up data by exact name in the secondary exact-match
// index; the key does not include an implicit digest. Returns nil if
// the index is disabled or there's no entry.
func (cs *ContentStore) FindExact(name ndn.Name, mustBeFresh bool) *CsEntry {
	if cs.exact == nil {
		return nil
	}
	key := name.Hash() ^ 0x9e3779b97f4a7c15
	entry, ok := cs.exact[key]
	if !ok || (mustBeFresh && !fresh(entry)) {
		return nil
	}
	cs.exactPolicy.BeforeUse(entry.index, entry.wire)
	return entry
}

func (cs *ContentStore) eraseExact(key uint64) {
	if entry, ok := cs.exact[key]; ok {
		delete(cs.exact, key)
		cs.exactPolicy.BeforeErase(key, entry.wire)
	}
}

// FindMatchingData returns a Data packet satisfying interest from the
// primary, prefix-matched index, or nil. Mirrors
// findMatchingDataCSPrefix's walk down from the deepest matched node.
func (cs *ContentStore) FindMatchingData(interest *ndn.Interest) *CsEntry {
	if !cs.serve {
		return nil
	}
	node := cs.tree.FindLongestPrefixMatch(interest.Name, func(*Node) bool { return true })
	entry := cs.findMatchingDataAt(node, interest, len(interest.Name))
	if entry != nil {
		cs.policy.BeforeUse(entry.index, entry.wire)
	}
	return entry
}

func (cs *ContentStore) findMatchingDataAt(node *Node, interest *ndn.Interest, dataLen int) *CsEntry {
	if node == nil {
		return nil
	}
	// node may be a shorter-than-dataLen ancestor when FindLongestPrefixMatch
	// fell back to the deepest existing node short of interest.Name itself;
	// such a node's Data can never satisfy the Interest, exact or prefix.
	matchable := node.depth == dataLen || (interest.CanBePrefix && node.depth > dataLen)
	if node.csEntry != nil && matchable && (!interest.MustBeFresh || fresh(node.csEntry)) {
		return node.csEntry
	}
	if interest.CanBePrefix && node.depth >= dataLen {
		for _, child := range node.children {
			if match := cs.findMatchingDataAt(child, interest, dataLen); match != nil {
				return match
			}
		}
	}
	return nil
}

// EraseByPrefix removes every primary-index entry whose name is prefix
// or a descendant of prefix, used by management-triggered CS flushes.
func (cs *ContentStore) EraseByPrefix(prefix ndn.Name) int {
	node := cs.tree.FindExact(prefix)
	if node == nil {
		return 0
	}
	erased := 0
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			walk(c)
		}
		if n.csEntry != nil {
			cs.policy.BeforeErase(n.csEntry.index, n.csEntry.wire)
			delete(cs.byIndex, n.csEntry.index)
			n.csEntry = nil
			cs.nEntries--
			erased++
			n.pruneIfEmpty()
		}
	}
	walk(node)
	return erased
}

// eraseFromPolicy removes the primary entry at index, invoked by the
// replacement policy during eviction.
func (cs *ContentStore) eraseFromPolicy(index uint64) {
	entry, ok := cs.byIndex[index]
	if !ok {
		return
	}
	delete(cs.byIndex, index)
	entry.node.csEntry = nil
	cs.nEntries--
	entry.node.pruneIfEmpty()
}
