/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"encoding/binary"

	"github.com/ndnfwd/core/dispatch"
)

// EncodePitToken builds the opaque PIT token stamped on an outgoing
// Interest so the Data (or Nack) that satisfies it can be routed back
// to the worker that owns the matching PIT entry without a second
// name-tree lookup. Layout is little-endian and picks one of the three
// shapes spec.md §6 enumerates, selected by dispatch.HashTokenEnabled
// and dispatch.DualCSEnabled. Grounded on processOutgoingInterest's
// binary.BigEndian.PutUint16(pitToken, threadID) pattern, generalized
// from a fixed 6-byte thread/token pair to the worker-routing-only
// shape named in spec.md.
func EncodePitToken(workerID int, nameTreeHash uint64, canBePrefix bool) []byte {
	size := 1
	if dispatch.HashTokenEnabled {
		size += 8
	}
	if dispatch.DualCSEnabled {
		size++
	}
	token := make([]byte, size)
	token[0] = byte(workerID)
	i := 1
	if dispatch.HashTokenEnabled {
		binary.LittleEndian.PutUint64(token[i:], nameTreeHash)
		i += 8
	}
	if dispatch.DualCSEnabled {
		var flags byte
		if canBePrefix {
			flags |= 1
		}
		token[i] = flags
	}
	return token
}

// DecodePitToken parses a token built by EncodePitToken, returning the
// owning worker ID and, when present, the name-tree hash and
// CanBePrefix flag it carries. ok is false if token is too short for
// the currently configured layout.
func DecodePitToken(token []byte) (workerID int, nameTreeHash uint64, canBePrefix bool, ok bool) {
	want := 1
	if dispatch.HashTokenEnabled {
		want += 8
	}
	if dispatch.DualCSEnabled {
		want++
	}
	if len(token) < want {
		return 0, 0, false, false
	}
	workerID = int(token[0])
	i := 1
	if dispatch.HashTokenEnabled {
		nameTreeHash = binary.LittleEndian.Uint64(token[i:])
		i += 8
	}
	if dispatch.DualCSEnabled {
		canBePrefix = token[i]&1 != 0
	}
	return workerID, nameTreeHash, canBePrefix, true
}
