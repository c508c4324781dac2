/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/ndnfwd/core/core"
	"github.com/ndnfwd/core/dispatch"
	"github.com/ndnfwd/core/ndn"
	"github.com/ndnfwd/core/table"
)

// InternalForwarderTransport is the forwarder-facing half of an
// internal face, used by management to inject and receive packets
// without a real transport underneath. Grounded on
// face/internal-transport.go's InternalTransport, but built as one
// half of a genuine linked pair: the teacher's version only has a
// forwarder-facing side, because its client-facing peer lives in a
// management package absent from the retrieved snapshot.
type InternalForwarderTransport struct {
	Base
	peer *InternalClientTransport
}

// InternalClientTransport is the client-facing half: what an
// in-process management handler calls Send/Receive on.
type InternalClientTransport struct {
	recv chan *ndn.PendingPacket
	peer *InternalForwarderTransport
}

// NewInternalFacePair builds a connected InternalForwarderTransport/
// InternalClientTransport pair and registers the forwarder side as a
// face. Persistency is permanent and link type point-to-point, matching
// the teacher's MakeInternalTransport constants; MTU is unbounded since
// this module never frames wire bytes.
func NewInternalFacePair() (*InternalForwarderTransport, *InternalClientTransport) {
	fwd := &InternalForwarderTransport{Base: NewBase(Local, PointToPoint)}
	client := &InternalClientTransport{recv: make(chan *ndn.PendingPacket, 64)}
	fwd.peer = client
	client.peer = fwd
	Register(fwd, &fwd.Base)
	return fwd, client
}

func (t *InternalForwarderTransport) String() string {
	return "internal-transport"
}

// SendPacket implements dispatch.Face: a packet the forwarder sends
// out this face is delivered to the client side's Receive channel,
// posted rather than called synchronously so the forwarding worker's
// goroutine never blocks on whatever the client does with it.
func (t *InternalForwarderTransport) SendPacket(out dispatch.OutPkt) {
	t.addOutBytes(len(out.Pkt.Raw))
	select {
	case t.peer.recv <- out.Pkt:
	default:
		core.Log.Error(t, "internal face client queue full, dropping")
	}
}

func (t *InternalForwarderTransport) AfterAddFace()         {}
func (t *InternalForwarderTransport) BeforeRemoveFace()     {}
func (t *InternalForwarderTransport) AfterStateChange(bool) {}

func (t *InternalForwarderTransport) Close() {
	close(t.peer.recv)
}

// Send delivers pkt to the forwarder side as if it arrived on this
// face. A pkt carrying a PIT token (a Data or Nack returning in
// response to an Interest this module itself forwarded) is routed to
// the worker named in that token, since the Data's name can hash to a
// different worker than the Interest it satisfies under CanBePrefix
// matching; only a token-less pkt (a fresh Interest with no PIT entry
// yet) falls back to dispatch.Shard. Posted through the worker's own
// queue, never processed synchronously on the client's goroutine.
func (c *InternalClientTransport) Send(pkt *ndn.PendingPacket, shardPrefixLen int) {
	pkt.IncomingFaceID = c.peer.FaceID()

	workerID := dispatch.Shard(pkt.Name, shardPrefixLen)
	if len(pkt.PitToken) > 0 {
		if id, _, _, ok := table.DecodePitToken(pkt.PitToken); ok {
			workerID = id
		}
	}

	worker := dispatch.GetFWThread(workerID)
	if worker == nil {
		core.Log.Error(c, "no forwarding worker available for internal face send")
		return
	}
	switch {
	case pkt.L3.Interest != nil:
		worker.QueueInterest(pkt)
	case pkt.L3.Data != nil:
		worker.QueueData(pkt)
	case pkt.L3.Nack != nil:
		worker.QueueNack(pkt)
	}
}

func (c *InternalClientTransport) String() string { return "internal-client" }

// Receive blocks until the forwarder sends a packet out this face, or
// the face is closed.
func (c *InternalClientTransport) Receive() (*ndn.PendingPacket, bool) {
	pkt, ok := <-c.recv
	return pkt, ok
}
