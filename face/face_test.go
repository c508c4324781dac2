/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndnfwd/core/dispatch"
)

type fakeFace struct {
	Base
	added, removed bool
	stateChanges   []bool
}

func (f *fakeFace) SendPacket(dispatch.OutPkt) {}
func (f *fakeFace) AfterAddFace()               { f.added = true }
func (f *fakeFace) BeforeRemoveFace()           { f.removed = true }
func (f *fakeFace) AfterStateChange(running bool) {
	f.stateChanges = append(f.stateChanges, running)
}
func (f *fakeFace) Close() {}

func TestRegisterAssignsIDAndFiresHooks(t *testing.T) {
	f := &fakeFace{Base: NewBase(NonLocal, PointToPoint)}

	id := Register(f, &f.Base)
	t.Cleanup(func() { Unregister(f, &f.Base) })

	assert.NotZero(t, id)
	assert.Equal(t, id, f.FaceID())
	assert.True(t, f.IsRunning())
	assert.True(t, f.added)
	assert.Equal(t, []bool{true}, f.stateChanges)
	assert.Same(t, dispatch.Face(f), dispatch.GetFace(id))
}

func TestUnregisterFiresHooksAndRemovesFace(t *testing.T) {
	f := &fakeFace{Base: NewBase(Local, PointToPoint)}
	id := Register(f, &f.Base)

	Unregister(f, &f.Base)

	assert.False(t, f.IsRunning())
	assert.True(t, f.removed)
	assert.Equal(t, []bool{true, false}, f.stateChanges)
	assert.Nil(t, dispatch.GetFace(id))
}
