/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndnfwd/core/dispatch"
	"github.com/ndnfwd/core/ndn"
	"github.com/ndnfwd/core/table"
)

type fakeThread struct {
	id        int
	interests []*ndn.PendingPacket
	datas     []*ndn.PendingPacket
	nacks     []*ndn.PendingPacket
}

func (f *fakeThread) GetID() int { return f.id }
func (f *fakeThread) QueueInterest(pkt *ndn.PendingPacket) {
	f.interests = append(f.interests, pkt)
}
func (f *fakeThread) QueueData(pkt *ndn.PendingPacket) { f.datas = append(f.datas, pkt) }
func (f *fakeThread) QueueNack(pkt *ndn.PendingPacket) { f.nacks = append(f.nacks, pkt) }
func (f *fakeThread) GetNumPitEntries() int            { return 0 }
func (f *fakeThread) GetNumCsEntries() int             { return 0 }

func TestInternalFacePairSendReachesWorker(t *testing.T) {
	worker := &fakeThread{id: 0}
	dispatch.InitializeFWThreads([]dispatch.FWThread{worker})
	t.Cleanup(func() { dispatch.InitializeFWThreads(nil) })

	fwd, client := NewInternalFacePair()
	t.Cleanup(func() { Unregister(fwd, &fwd.Base) })

	pkt := &ndn.PendingPacket{
		Name: ndn.NameFromString("/a/b"),
		L3:   &ndn.Packet{Interest: &ndn.Interest{Name: ndn.NameFromString("/a/b")}},
	}
	client.Send(pkt, 0)

	assert.Len(t, worker.interests, 1)
	assert.Equal(t, fwd.FaceID(), worker.interests[0].IncomingFaceID)
}

func TestInternalFacePairSendRoutesByTokenNotName(t *testing.T) {
	worker0 := &fakeThread{id: 0}
	worker1 := &fakeThread{id: 1}
	dispatch.InitializeFWThreads([]dispatch.FWThread{worker0, worker1})
	t.Cleanup(func() { dispatch.InitializeFWThreads(nil) })

	fwd, client := NewInternalFacePair()
	t.Cleanup(func() { Unregister(fwd, &fwd.Base) })

	// A long name whose full-name shard and whose stamped-token worker
	// deliberately disagree: the token must win.
	name := ndn.NameFromString("/a/b/c/d/e/f/g/h")
	wrongWorker := dispatch.Shard(name, 0)
	rightWorker := 1 - wrongWorker

	data := &ndn.PendingPacket{
		Name:     name,
		L3:       &ndn.Packet{Data: &ndn.Data{Name: name}},
		PitToken: table.EncodePitToken(rightWorker, 0, false),
	}
	client.Send(data, 0)

	if rightWorker == 0 {
		assert.Len(t, worker0.datas, 1)
		assert.Empty(t, worker1.datas)
	} else {
		assert.Len(t, worker1.datas, 1)
		assert.Empty(t, worker0.datas)
	}
}

func TestInternalFacePairForwarderSendReachesClient(t *testing.T) {
	fwd, client := NewInternalFacePair()
	t.Cleanup(func() { Unregister(fwd, &fwd.Base) })

	data := &ndn.PendingPacket{Raw: []byte("hello")}
	fwd.SendPacket(dispatch.OutPkt{Pkt: data})

	got, ok := client.Receive()
	assert.True(t, ok)
	assert.Same(t, data, got)
}

func TestInternalFacePairCloseClosesClientChannel(t *testing.T) {
	fwd, client := NewInternalFacePair()
	t.Cleanup(func() { Unregister(fwd, &fwd.Base) })

	fwd.Close()

	_, ok := client.Receive()
	assert.False(t, ok)
}
