/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/ndnfwd/core/ndn"
)

// PitInRecord records an Interest received on inFace, refreshed on
// every retransmission.
type PitInRecord struct {
	Face            uint64
	LatestTimestamp time.Time
	LatestNonce     uint32
	ExpirationTime  time.Time
	// PitToken is the opaque token the downstream Interest carried on
	// this face, if any, echoed back verbatim on the responding Data.
	PitToken []byte
}

// PitOutRecord records an Interest forwarded out outFace.
type PitOutRecord struct {
	Face            uint64
	LatestTimestamp time.Time
	LatestNonce     uint32
	ExpirationTime  time.Time
}

// PitEntry is a pending Interest, anchored at a NameTree node. Several
// PitEntry values may share a node when their selectors differ, mirroring
// the teacher's []*nameTreePitEntry per node.
type PitEntry struct {
	node           *Node
	canBePrefix    bool
	mustBeFresh    bool
	forwardingHint ndn.Name

	inRecords  map[uint64]*PitInRecord
	outRecords map[uint64]*PitOutRecord

	satisfied bool
	token     uint32

	expiry *pqItem[*PitEntry, int64]
}

func (e *PitEntry) Name() ndn.Name           { return e.node.name }
func (e *PitEntry) CanBePrefix() bool        { return e.canBePrefix }
func (e *PitEntry) MustBeFresh() bool        { return e.mustBeFresh }
func (e *PitEntry) ForwardingHint() ndn.Name { return e.forwardingHint }
func (e *PitEntry) Satisfied() bool          { return e.satisfied }
func (e *PitEntry) SetSatisfied(v bool)      { e.satisfied = v }
func (e *PitEntry) Token() uint32            { return e.token }

func (e *PitEntry) InRecords() map[uint64]*PitInRecord   { return e.inRecords }
func (e *PitEntry) OutRecords() map[uint64]*PitOutRecord { return e.outRecords }

func (e *PitEntry) ExpirationTime() time.Time {
	if e.expiry == nil {
		return time.Time{}
	}
	return time.Unix(0, e.expiry.key)
}

// Pit is the Pending Interest Table, addressed through a shared
// NameTree and keyed for fast token lookup, per spec.md §4.4. Grounded
// on the teacher's PitCsTree, split out of its combined PIT/CS type.
type Pit struct {
	tree *NameTree

	tokenCounter uint32
	byToken      map[uint32]*PitEntry

	expiry *expiryQueue[*PitEntry, int64]
	nPit   int
}

// NewPit creates a PIT backed by the given NameTree.
func NewPit(tree *NameTree) *Pit {
	return &Pit{
		tree:    tree,
		byToken: make(map[uint32]*PitEntry),
		expiry:  newExpiryQueue[*PitEntry, int64](),
	}
}

func (p *Pit) newToken() uint32 {
	for {
		p.tokenCounter++
		if p.tokenCounter == 0 {
			continue
		}
		if _, taken := p.byToken[p.tokenCounter]; !taken {
			return p.tokenCounter
		}
	}
}

func hintEqual(a, b ndn.Name) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return a.Equal(b)
}

// InsertInterest finds or creates the PIT entry matching interest's
// name and selectors, and reports whether this is a looped
// retransmission: a duplicate nonce arriving on a face other than the
// one that last carried it.
func (p *Pit) InsertInterest(interest *ndn.Interest, hint ndn.Name, inFace uint64) (*PitEntry, bool) {
	node := p.tree.Lookup(interest.Name)

	var entry *PitEntry
	for _, e := range node.pitEntries {
		if e.canBePrefix == interest.CanBePrefix &&
			e.mustBeFresh == interest.MustBeFresh &&
			hintEqual(hint, e.forwardingHint) {
			entry = e
			break
		}
	}

	if entry == nil {
		entry = &PitEntry{
			node:           node,
			canBePrefix:    interest.CanBePrefix,
			mustBeFresh:    interest.MustBeFresh,
			forwardingHint: hint,
			inRecords:      make(map[uint64]*PitInRecord),
			outRecords:     make(map[uint64]*PitOutRecord),
			token:          p.newToken(),
		}
		node.pitEntries = append(node.pitEntries, entry)
		p.byToken[entry.token] = entry
		p.nPit++
	}

	for face, in := range entry.inRecords {
		if face != inFace && in.LatestNonce == interest.Nonce {
			return entry, true
		}
	}
	return entry, false
}

// InsertInRecord finds or creates entry's in-record for face, returning
// the record, whether one already existed, and its previous nonce.
// incomingPitToken is remembered verbatim so it can be echoed back on
// the Data that eventually satisfies this entry.
func (e *PitEntry) InsertInRecord(interest *ndn.Interest, face uint64, incomingPitToken []byte, now time.Time) (*PitInRecord, bool, uint32) {
	lifetime := interest.Lifetime
	if lifetime <= 0 {
		lifetime = 4 * time.Second
	}
	if record, ok := e.inRecords[face]; ok {
		prev := record.LatestNonce
		record.LatestNonce = interest.Nonce
		record.LatestTimestamp = now
		record.ExpirationTime = now.Add(lifetime)
		record.PitToken = incomingPitToken
		return record, true, prev
	}
	record := &PitInRecord{
		Face:            face,
		LatestNonce:     interest.Nonce,
		LatestTimestamp: now,
		ExpirationTime:  now.Add(lifetime),
		PitToken:        incomingPitToken,
	}
	e.inRecords[face] = record
	return record, false, 0
}

// InsertOutRecord finds or creates entry's out-record for face.
func (e *PitEntry) InsertOutRecord(interest *ndn.Interest, face uint64, now time.Time) *PitOutRecord {
	lifetime := interest.Lifetime
	if lifetime <= 0 {
		lifetime = 4 * time.Second
	}
	if record, ok := e.outRecords[face]; ok {
		record.LatestNonce = interest.Nonce
		record.LatestTimestamp = now
		record.ExpirationTime = now.Add(lifetime)
		return record
	}
	record := &PitOutRecord{
		Face:            face,
		LatestNonce:     interest.Nonce,
		LatestTimestamp: now,
		ExpirationTime:  now.Add(lifetime),
	}
	e.outRecords[face] = record
	return record
}

func (e *PitEntry) RemoveInRecord(face uint64)  { delete(e.inRecords, face) }
func (e *PitEntry) RemoveOutRecord(face uint64) { delete(e.outRecords, face) }
func (e *PitEntry) ClearInRecords()             { e.inRecords = make(map[uint64]*PitInRecord) }
func (e *PitEntry) ClearOutRecords()            { e.outRecords = make(map[uint64]*PitOutRecord) }

// UpdateExpiry recomputes entry's expiration as the latest of its
// in-records' expiration times and repositions it in the expiry queue,
// mirroring updatePitExpiry in the teacher.
func (p *Pit) UpdateExpiry(e *PitEntry) {
	var latest time.Time
	for _, in := range e.inRecords {
		if in.ExpirationTime.After(latest) {
			latest = in.ExpirationTime
		}
	}
	if latest.IsZero() {
		latest = time.Now()
	}
	if e.expiry == nil {
		e.expiry = p.expiry.Insert(e, latest.UnixNano())
	} else {
		p.expiry.Update(e.expiry, latest.UnixNano())
	}
}

// SetExpiry overrides entry's expiration to now+duration, bypassing the
// latest-in-record computation UpdateExpiry normally does. Lets a
// strategy prolong how long it waits for a response, or force an
// immediate expiry (duration 0) when it has nothing left to try.
func (p *Pit) SetExpiry(e *PitEntry, duration time.Duration) {
	expiry := time.Now().Add(duration)
	if e.expiry == nil {
		e.expiry = p.expiry.Insert(e, expiry.UnixNano())
	} else {
		p.expiry.Update(e.expiry, expiry.UnixNano())
	}
}

// RemoveInterest deletes e from the PIT.
func (p *Pit) RemoveInterest(e *PitEntry) {
	node := e.node
	for i, cur := range node.pitEntries {
		if cur == e {
			node.pitEntries = append(node.pitEntries[:i], node.pitEntries[i+1:]...)
			break
		}
	}
	delete(p.byToken, e.token)
	if e.expiry != nil {
		p.expiry.Remove(e.expiry)
		e.expiry = nil
	}
	p.nPit--
	node.pruneIfEmpty()
}

// FindInterestExactMatch returns the PIT entry whose name and selectors
// exactly match interest, or nil.
func (p *Pit) FindInterestExactMatch(interest *ndn.Interest) *PitEntry {
	node := p.tree.FindExact(interest.Name)
	if node == nil {
		return nil
	}
	for _, e := range node.pitEntries {
		if e.canBePrefix == interest.CanBePrefix && e.mustBeFresh == interest.MustBeFresh {
			return e
		}
	}
	return nil
}

// FindInterestPrefixMatchByData returns every PIT entry that data could
// satisfy: first by PIT token if carried on the Data, else by walking
// the name tree from the longest-matching node up to the root.
func (p *Pit) FindInterestPrefixMatchByData(data *ndn.Data, token *uint32) []*PitEntry {
	if token != nil {
		if entry, ok := p.byToken[*token]; ok && entry.token == *token {
			return []*PitEntry{entry}
		}
	}
	return p.findPrefixMatchByName(data.Name)
}

func (p *Pit) findPrefixMatchByName(name ndn.Name) []*PitEntry {
	var matching []*PitEntry
	dataLen := len(name)
	for node := p.tree.FindLongestPrefixMatch(name, func(*Node) bool { return true }); node != nil; node = node.parent {
		for _, e := range node.pitEntries {
			if e.canBePrefix || node.depth == dataLen {
				matching = append(matching, e)
			}
		}
	}
	return matching
}

// Size returns the number of entries in the PIT.
func (p *Pit) Size() int { return p.nPit }

// NextExpiry returns the time of the soonest-to-expire entry, if any.
func (p *Pit) NextExpiry() (time.Time, bool) {
	key, ok := p.expiry.PeekKey()
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(0, key), true
}

// ExpireOne removes and returns the soonest-to-expire entry. The
// caller must check NextExpiry first.
func (p *Pit) ExpireOne() *PitEntry {
	e := p.expiry.PopMin()
	e.expiry = nil
	p.RemoveInterest(e)
	return e
}
