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

func TestNetworkRegionIsProducer(t *testing.T) {
	nr := NewNetworkRegion()
	nr.Add(ndn.NameFromString("/ndn/edu/ucla"))

	assert.True(t, nr.IsProducer(ndn.NameFromString("/ndn/edu/ucla/ping")))
	assert.False(t, nr.IsProducer(ndn.NameFromString("/ndn/edu/arizona")))
}

func TestNetworkRegionAddIsIdempotent(t *testing.T) {
	nr := NewNetworkRegion()
	region := ndn.NameFromString("/ndn/edu/ucla")
	nr.Add(region)
	nr.Add(region)

	assert.Len(t, nr.prefixes, 1)
}
