/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ndnfwd/core/ndn"
)

func TestPitInsertInterestAggregatesBySelector(t *testing.T) {
	pit := NewPit(NewNameTree())
	name := ndn.NameFromString("/a/b")

	i1 := &ndn.Interest{Name: name, CanBePrefix: true, MustBeFresh: false, Nonce: 1}
	e1, loop1 := pit.InsertInterest(i1, nil, 10)
	assert.False(t, loop1)

	i2 := &ndn.Interest{Name: name, CanBePrefix: true, MustBeFresh: false, Nonce: 2}
	e2, loop2 := pit.InsertInterest(i2, nil, 11)
	assert.False(t, loop2)
	assert.Same(t, e1, e2, "same name and selectors from different faces must aggregate into one entry")

	i3 := &ndn.Interest{Name: name, CanBePrefix: false, MustBeFresh: true, Nonce: 3}
	e3, _ := pit.InsertInterest(i3, nil, 10)
	assert.NotSame(t, e1, e3, "differing selectors must not aggregate")

	assert.Equal(t, 2, pit.Size())
}

func TestPitInsertInterestDetectsLoop(t *testing.T) {
	pit := NewPit(NewNameTree())
	name := ndn.NameFromString("/a/b")

	i1 := &ndn.Interest{Name: name, Nonce: 7}
	entry, _ := pit.InsertInterest(i1, nil, 10)
	entry.InsertInRecord(i1, 10, nil, time.Now())

	// Same nonce arriving on a different face is a loop.
	i2 := &ndn.Interest{Name: name, Nonce: 7}
	_, isLoop := pit.InsertInterest(i2, nil, 20)
	assert.True(t, isLoop)

	// Same nonce arriving again on the original face is just a
	// retransmission, not a loop.
	_, notLoop := pit.InsertInterest(i2, nil, 10)
	assert.False(t, notLoop)
}

func TestPitRemoveInterestPrunesNode(t *testing.T) {
	pit := NewPit(NewNameTree())
	name := ndn.NameFromString("/a/b")
	entry, _ := pit.InsertInterest(&ndn.Interest{Name: name}, nil, 10)

	pit.RemoveInterest(entry)

	assert.Equal(t, 0, pit.Size())
	assert.Nil(t, pit.tree.FindExact(name))
}

func TestPitFindInterestExactMatch(t *testing.T) {
	pit := NewPit(NewNameTree())
	name := ndn.NameFromString("/a/b")
	i := &ndn.Interest{Name: name, CanBePrefix: true, MustBeFresh: true}
	entry, _ := pit.InsertInterest(i, nil, 10)

	found := pit.FindInterestExactMatch(i)
	assert.Same(t, entry, found)

	notFound := pit.FindInterestExactMatch(&ndn.Interest{Name: name, CanBePrefix: false, MustBeFresh: true})
	assert.Nil(t, notFound)
}

func TestPitFindInterestPrefixMatchByData(t *testing.T) {
	pit := NewPit(NewNameTree())
	prefixName := ndn.NameFromString("/a")
	exactName := ndn.NameFromString("/a/b")

	prefixEntry, _ := pit.InsertInterest(&ndn.Interest{Name: prefixName, CanBePrefix: true}, nil, 10)
	exactEntry, _ := pit.InsertInterest(&ndn.Interest{Name: exactName, CanBePrefix: false}, nil, 11)

	data := &ndn.Data{Name: exactName}
	matches := pit.FindInterestPrefixMatchByData(data, nil)

	assert.Contains(t, matches, prefixEntry)
	assert.Contains(t, matches, exactEntry)
	assert.Len(t, matches, 2)
}

func TestPitFindInterestPrefixMatchByDataExcludesNonPrefixAtShallowerDepth(t *testing.T) {
	pit := NewPit(NewNameTree())
	shallow := ndn.NameFromString("/a")
	entry, _ := pit.InsertInterest(&ndn.Interest{Name: shallow, CanBePrefix: false}, nil, 10)

	data := &ndn.Data{Name: ndn.NameFromString("/a/b")}
	matches := pit.FindInterestPrefixMatchByData(data, nil)

	assert.NotContains(t, matches, entry, "a non-prefix Interest at a shallower name must not match deeper Data")
}

func TestPitExpiryOrdering(t *testing.T) {
	pit := NewPit(NewNameTree())
	now := time.Now()

	first := &ndn.Interest{Name: ndn.NameFromString("/a"), Lifetime: time.Second}
	e1, _ := pit.InsertInterest(first, nil, 10)
	e1.InsertInRecord(first, 10, nil, now)
	pit.UpdateExpiry(e1)

	second := &ndn.Interest{Name: ndn.NameFromString("/b"), Lifetime: 5 * time.Second}
	e2, _ := pit.InsertInterest(second, nil, 10)
	e2.InsertInRecord(second, 10, nil, now)
	pit.UpdateExpiry(e2)

	nextExpiry, ok := pit.NextExpiry()
	assert.True(t, ok)
	assert.WithinDuration(t, now.Add(time.Second), nextExpiry, time.Millisecond)

	expired := pit.ExpireOne()
	assert.Same(t, e1, expired)
	assert.Equal(t, 1, pit.Size())
}
