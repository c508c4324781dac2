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

func TestFibLongestPrefixMatchNeverNil(t *testing.T) {
	fib := NewFib(NewNameTree())

	entry := fib.FindLongestPrefixMatch(ndn.NameFromString("/a/b/c"))
	assert.NotNil(t, entry)
	assert.Empty(t, entry.NextHops())
}

func TestFibLongestPrefixMatchPrefersDeepest(t *testing.T) {
	fib := NewFib(NewNameTree())
	fib.Insert(ndn.NameFromString("/a")).AddNextHop(1, 10, 0)
	fib.Insert(ndn.NameFromString("/a/b")).AddNextHop(2, 10, 0)

	entry := fib.FindLongestPrefixMatch(ndn.NameFromString("/a/b/c"))
	assert.Equal(t, ndn.NameFromString("/a/b"), entry.Prefix())
}

func TestFibNextHopsSortedByCostThenFaceID(t *testing.T) {
	fib := NewFib(NewNameTree())
	entry := fib.Insert(ndn.NameFromString("/a"))
	entry.AddNextHop(3, 20, 0)
	entry.AddNextHop(1, 10, 0)
	entry.AddNextHop(2, 10, 0)

	hops := entry.NextHops()
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{hops[0].FaceID, hops[1].FaceID, hops[2].FaceID})
}

func TestFibAddNextHopIsUniqueByFaceID(t *testing.T) {
	fib := NewFib(NewNameTree())
	entry := fib.Insert(ndn.NameFromString("/a"))
	entry.AddNextHop(1, 10, 0)
	entry.AddNextHop(1, 20, 0)

	hops := entry.NextHops()
	assert.Len(t, hops, 1)
	assert.Equal(t, uint64(20), hops[0].Cost)
}

func TestFibRemoveNextHopPrunesEmptyEntry(t *testing.T) {
	fib := NewFib(NewNameTree())
	prefix := ndn.NameFromString("/a")
	entry := fib.Insert(prefix)
	entry.AddNextHop(1, 10, 0)
	entry.RemoveNextHop(1)

	assert.False(t, hasNextHops(fib.tree.FindExact(prefix)))
}

func TestFibRemoveFaceClearsAllEntries(t *testing.T) {
	fib := NewFib(NewNameTree())
	fib.Insert(ndn.NameFromString("/a")).AddNextHop(1, 10, 0)
	fib.Insert(ndn.NameFromString("/b")).AddNextHop(1, 10, 0)
	fib.Insert(ndn.NameFromString("/c")).AddNextHop(2, 10, 0)

	fib.RemoveFace(1)

	assert.Equal(t, 1, fib.Size())
}

func TestFibSize(t *testing.T) {
	fib := NewFib(NewNameTree())
	assert.Equal(t, 0, fib.Size())
	fib.Insert(ndn.NameFromString("/a")).AddNextHop(1, 10, 0)
	fib.Insert(ndn.NameFromString("/a/b")).AddNextHop(1, 10, 0)
	assert.Equal(t, 2, fib.Size())
}
