/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash"

	"github.com/ndnfwd/core/ndn"
)

// dnlEntry is one outstanding (name, nonce) pair and the time it
// expires from the Dead Nonce List.
type dnlEntry struct {
	hash   uint64
	expiry time.Time
}

// DeadNonceList catches retransmissions whose PIT entry has already
// been erased by the time the duplicate nonce arrives: a forwarded
// Interest's nonce is remembered here for a short window after its
// PIT entry is gone, closing the loop-detection gap that pure in-PIT
// nonce tracking leaves open. Grounded on the teacher's
// dead-nonce-list.go.
type DeadNonceList struct {
	lifetime time.Duration
	present  map[uint64]struct{}
	expiring []dnlEntry
}

// NewDeadNonceList creates a Dead Nonce List with the given entry
// lifetime.
func NewDeadNonceList(lifetime time.Duration) *DeadNonceList {
	return &DeadNonceList{
		lifetime: lifetime,
		present:  make(map[uint64]struct{}),
	}
}

func dnlHash(name ndn.Name, nonce uint32) uint64 {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], nonce)
	return xxhash.Sum64(buf[:]) + name.Hash()
}

// Find reports whether name and nonce are currently in the list.
func (d *DeadNonceList) Find(name ndn.Name, nonce uint32) bool {
	_, ok := d.present[dnlHash(name, nonce)]
	return ok
}

// Insert adds name and nonce to the list, returning whether they were
// already present.
func (d *DeadNonceList) Insert(name ndn.Name, nonce uint32) bool {
	hash := dnlHash(name, nonce)
	if _, exists := d.present[hash]; exists {
		return true
	}
	d.present[hash] = struct{}{}
	d.expiring = append(d.expiring, dnlEntry{hash: hash, expiry: time.Now().Add(d.lifetime)})
	return false
}

// RemoveExpired drops entries whose lifetime has elapsed, and reports
// how many were removed. Intended to be called periodically from the
// owning worker's event loop, not on a per-packet timer goroutine.
func (d *DeadNonceList) RemoveExpired(now time.Time) int {
	i := 0
	for i < len(d.expiring) && !d.expiring[i].expiry.After(now) {
		delete(d.present, d.expiring[i].hash)
		i++
	}
	if i > 0 {
		d.expiring = d.expiring[i:]
	}
	return i
}

// Size returns the number of entries currently in the list.
func (d *DeadNonceList) Size() int { return len(d.present) }
