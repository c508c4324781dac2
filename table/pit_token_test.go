/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndnfwd/core/dispatch"
)

func resetTokenFlags(t *testing.T) {
	t.Cleanup(func() {
		dispatch.HashTokenEnabled = false
		dispatch.DualCSEnabled = false
	})
}

func TestPitTokenRoundTripWorkerIDOnly(t *testing.T) {
	resetTokenFlags(t)
	dispatch.HashTokenEnabled = false
	dispatch.DualCSEnabled = false

	token := EncodePitToken(3, 0xdeadbeef, true)
	assert.Len(t, token, 1)

	workerID, hash, canBePrefix, ok := DecodePitToken(token)
	assert.True(t, ok)
	assert.Equal(t, 3, workerID)
	assert.Equal(t, uint64(0), hash)
	assert.False(t, canBePrefix)
}

func TestPitTokenRoundTripWithHash(t *testing.T) {
	resetTokenFlags(t)
	dispatch.HashTokenEnabled = true
	dispatch.DualCSEnabled = false

	token := EncodePitToken(7, 0x1122334455667788, false)
	assert.Len(t, token, 9)

	workerID, hash, _, ok := DecodePitToken(token)
	assert.True(t, ok)
	assert.Equal(t, 7, workerID)
	assert.Equal(t, uint64(0x1122334455667788), hash)
}

func TestPitTokenRoundTripWithDualCS(t *testing.T) {
	resetTokenFlags(t)
	dispatch.HashTokenEnabled = true
	dispatch.DualCSEnabled = true

	token := EncodePitToken(200, 99, true)
	assert.Len(t, token, 10)

	workerID, hash, canBePrefix, ok := DecodePitToken(token)
	assert.True(t, ok)
	assert.Equal(t, 200, workerID)
	assert.Equal(t, uint64(99), hash)
	assert.True(t, canBePrefix)
}

func TestPitTokenDecodeRejectsShortToken(t *testing.T) {
	resetTokenFlags(t)
	dispatch.HashTokenEnabled = true
	dispatch.DualCSEnabled = true

	_, _, _, ok := DecodePitToken([]byte{1})
	assert.False(t, ok)
}
