/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndnfwd/core/ndn"
)

// freezeOnce ensures FreezeRegistry only runs once across this
// package's test binary: it is idempotent, but calling it from every
// test makes the ordering dependency explicit.
var freezeOnce sync.Once

func freezeForTest() {
	freezeOnce.Do(FreezeRegistry)
}

func TestLookupUnversionedReturnsHighestVersion(t *testing.T) {
	freezeForTest()

	full, ok := Lookup(ndn.NameFromString("/localhost/nfd/strategy/best-route"))
	assert.True(t, ok)
	assert.True(t, full.Equal(ndn.NameFromString("/localhost/nfd/strategy/best-route").Append(ndn.NewVersionComponent(1))))
}

func TestLookupVersionedReturnsLowestAtOrAboveRequested(t *testing.T) {
	freezeForTest()

	name := ndn.NameFromString("/localhost/nfd/strategy/best-route").Append(ndn.NewVersionComponent(0))
	full, ok := Lookup(name)
	assert.True(t, ok)
	assert.True(t, full.Equal(ndn.NameFromString("/localhost/nfd/strategy/best-route").Append(ndn.NewVersionComponent(1))))
}

func TestLookupVersionedAboveHighestRegisteredFails(t *testing.T) {
	freezeForTest()

	name := ndn.NameFromString("/localhost/nfd/strategy/best-route").Append(ndn.NewVersionComponent(99))
	_, ok := Lookup(name)
	assert.False(t, ok)
}

func TestLookupUnknownStrategyFails(t *testing.T) {
	freezeForTest()

	_, ok := Lookup(ndn.NameFromString("/localhost/nfd/strategy/no-such-strategy"))
	assert.False(t, ok)
}

func TestLookupDistinguishesStrategyLines(t *testing.T) {
	freezeForTest()

	full, ok := Lookup(ndn.NameFromString("/localhost/nfd/strategy/multicast"))
	assert.True(t, ok)
	assert.True(t, full.IsPrefix(ndn.NameFromString("/localhost/nfd/strategy/multicast").Append(ndn.NewVersionComponent(1))))
}
