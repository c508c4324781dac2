/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"container/list"

	"github.com/ndnfwd/core/ndn"
)

// CsLRU is a least-recently-used replacement policy for a Content
// Store index. Grounded on the teacher's CsLRU in cs-lru.go, adapted
// to take an eviction callback instead of a direct *PitCs reference so
// it can drive either the primary or the exact-match index.
type CsLRU struct {
	capacity  int
	evict     func(index uint64)
	queue     *list.List
	locations map[uint64]*list.Element
}

// NewCsLRU creates an LRU policy that calls evict to remove an entry
// chosen for eviction. Capacity must be set with SetCapacity before
// EvictEntries has any effect.
func NewCsLRU(evict func(index uint64)) *CsLRU {
	return &CsLRU{
		evict:     evict,
		queue:     list.New(),
		locations: make(map[uint64]*list.Element),
	}
}

// SetCapacity changes the maximum number of entries the policy allows
// before EvictEntries starts removing the least-recently-used ones.
func (l *CsLRU) SetCapacity(capacity int) { l.capacity = capacity }

func (l *CsLRU) AfterInsert(index uint64, wire []byte, data *ndn.Data) {
	l.locations[index] = l.queue.PushBack(index)
}

func (l *CsLRU) AfterRefresh(index uint64, wire []byte, data *ndn.Data) {
	if location, ok := l.locations[index]; ok {
		l.queue.Remove(location)
	}
	l.locations[index] = l.queue.PushBack(index)
}

func (l *CsLRU) BeforeErase(index uint64, wire []byte) {
	if location, ok := l.locations[index]; ok {
		l.queue.Remove(location)
		delete(l.locations, index)
	}
}

func (l *CsLRU) BeforeUse(index uint64, wire []byte) {
	if location, ok := l.locations[index]; ok {
		l.queue.Remove(location)
	}
	l.locations[index] = l.queue.PushBack(index)
}

// EvictEntries removes least-recently-used entries until the queue is
// back at or below capacity. A non-positive capacity means unbounded.
func (l *CsLRU) EvictEntries() {
	if l.capacity <= 0 {
		return
	}
	for l.queue.Len() > l.capacity {
		front := l.queue.Front()
		index := front.Value.(uint64)
		delete(l.locations, index)
		l.queue.Remove(front)
		l.evict(index)
	}
}
