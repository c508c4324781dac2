/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndnfwd/core/ndn"
)

func TestComponentNumberValueRoundTrip(t *testing.T) {
	v := ndn.NewVersionComponent(10)
	n, ok := v.NumberValue()
	assert.True(t, ok)
	assert.Equal(t, uint64(10), n)

	seg := ndn.NewSegmentComponent(300)
	n, ok = seg.NumberValue()
	assert.True(t, ok)
	assert.Equal(t, uint64(300), n)

	generic := ndn.NewGenericComponent("abc")
	_, ok = generic.NumberValue()
	assert.False(t, ok)
}

func TestComponentEqual(t *testing.T) {
	a := ndn.NewGenericComponent("abc")
	b := ndn.NewGenericComponent("abc")
	c := ndn.NewGenericComponent("abd")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(ndn.NewVersionComponent(0)))
}

func TestComponentCompareOrdersByTypeThenLengthThenValue(t *testing.T) {
	generic := ndn.NewGenericComponent("a")
	version := ndn.NewVersionComponent(1)
	assert.Equal(t, -1, generic.Compare(version), "lower type tag sorts first")
	assert.Equal(t, 1, version.Compare(generic))

	short := ndn.NewGenericComponent("a")
	long := ndn.NewGenericComponent("aa")
	assert.Equal(t, -1, short.Compare(long), "shorter value sorts first at equal type")

	ab := ndn.NewGenericComponent("ab")
	ac := ndn.NewGenericComponent("ac")
	assert.Equal(t, -1, ab.Compare(ac))
	assert.Equal(t, 0, ab.Compare(ab.Clone()))
}

func TestComponentHashIsStableAndTypeSensitive(t *testing.T) {
	a := ndn.NewGenericComponent("abc")
	b := ndn.NewGenericComponent("abc")
	assert.Equal(t, a.Hash(), b.Hash())

	v := ndn.Component{Typ: ndn.TypeVersion, Val: a.Val}
	assert.NotEqual(t, a.Hash(), v.Hash(), "hash must fold in the type tag, not just the value")
}

func TestComponentCloneIsIndependentOfOriginal(t *testing.T) {
	a := ndn.NewGenericComponent("abc")
	clone := a.Clone()
	clone.Val[0] = 'x'
	assert.Equal(t, byte('a'), a.Val[0], "mutating the clone must not affect the original backing array")
}

func TestComponentString(t *testing.T) {
	assert.Equal(t, "abc", ndn.NewGenericComponent("abc").String())
	assert.Equal(t, "v=7", ndn.NewVersionComponent(7).String())
	assert.Equal(t, "seg=0", ndn.NewSegmentComponent(0).String())
}
