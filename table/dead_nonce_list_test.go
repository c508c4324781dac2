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

func TestDeadNonceListInsertAndFind(t *testing.T) {
	dnl := NewDeadNonceList(time.Minute)
	name := ndn.NameFromString("/a/b")

	assert.False(t, dnl.Find(name, 42))

	existed := dnl.Insert(name, 42)
	assert.False(t, existed)
	assert.True(t, dnl.Find(name, 42))

	existedAgain := dnl.Insert(name, 42)
	assert.True(t, existedAgain)
	assert.Equal(t, 1, dnl.Size())
}

func TestDeadNonceListDistinguishesNameAndNonce(t *testing.T) {
	dnl := NewDeadNonceList(time.Minute)
	dnl.Insert(ndn.NameFromString("/a"), 1)

	assert.False(t, dnl.Find(ndn.NameFromString("/a"), 2))
	assert.False(t, dnl.Find(ndn.NameFromString("/b"), 1))
}

func TestDeadNonceListRemoveExpired(t *testing.T) {
	dnl := NewDeadNonceList(time.Hour)
	name := ndn.NameFromString("/a")
	dnl.Insert(name, 1)

	removed := dnl.RemoveExpired(time.Now())
	assert.Equal(t, 0, removed, "entry must not be removed before its lifetime elapses")

	// Simulate the lifetime having elapsed by checking far in the future
	// rather than sleeping an hour.
	removed = dnl.RemoveExpired(time.Now().Add(2 * time.Hour))
	assert.Equal(t, 1, removed)
	assert.False(t, dnl.Find(name, 1))
	assert.Equal(t, 0, dnl.Size())
}
