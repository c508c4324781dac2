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

func TestMeasurementsGetOrCreateThenGet(t *testing.T) {
	m := NewMeasurements(NewNameTree())
	name := ndn.NameFromString("/a/b")

	assert.Nil(t, m.Get(name))

	entry := m.GetOrCreate(name)
	entry.AddToInt("retries", 1)
	entry.AddToInt("retries", 2)

	assert.Same(t, entry, m.Get(name))
	assert.Equal(t, 3, m.Get(name).Get("retries"))
}

func TestMeasurementsAddSampleToEWMA(t *testing.T) {
	m := NewMeasurements(NewNameTree())
	entry := m.GetOrCreate(ndn.NameFromString("/a"))

	entry.AddSampleToEWMA("rtt", 100.0, 0.5)
	assert.Equal(t, 100.0, entry.Get("rtt"))

	entry.AddSampleToEWMA("rtt", 200.0, 0.5)
	assert.Equal(t, 250.0, entry.Get("rtt"), "200 + 0.5*(200-100) = 250")
}

func TestMeasurementsEraseRemovesEntry(t *testing.T) {
	m := NewMeasurements(NewNameTree())
	name := ndn.NameFromString("/a")
	m.GetOrCreate(name)

	m.Erase(name)

	assert.Nil(t, m.Get(name))
	assert.Equal(t, 0, m.Size())
}

func TestMeasurementsSize(t *testing.T) {
	m := NewMeasurements(NewNameTree())
	m.GetOrCreate(ndn.NameFromString("/a"))
	m.GetOrCreate(ndn.NameFromString("/b"))

	assert.Equal(t, 2, m.Size())
}
