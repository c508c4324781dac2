/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"time"

	"github.com/ndnfwd/core/core"
	"github.com/ndnfwd/core/ndn"
	"github.com/ndnfwd/core/table"
)

// MulticastSuppressionTime is how long a retransmission carrying a
// different nonce than an existing out-record is suppressed after that
// out-record was last sent.
const MulticastSuppressionTime = 500 * time.Millisecond

// Multicast forwards Interests to every usable next-hop. Grounded on
// fw/fw/multicast.go.
type Multicast struct {
	StrategyBase
}

func init() {
	Register("multicast", 1, func() Strategy { return &Multicast{} })
}

func (s *Multicast) Instantiate(thread *Thread) {
	s.NewStrategyBase(thread, "multicast", 1)
}

func (s *Multicast) AfterContentStoreHit(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64) {
	core.Log.Trace(s, "content store hit", "name", pkt.Name.String())
	s.SendData(pkt, pitEntry, inFace, 0)
}

func (s *Multicast) AfterReceiveData(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64) {
	core.Log.Trace(s, "after receive data", "name", pkt.Name.String(), "inrecords", len(pitEntry.InRecords()))
	for faceID := range pitEntry.InRecords() {
		s.SendData(pkt, pitEntry, faceID, inFace)
	}
}

func (s *Multicast) AfterReceiveInterest(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64, nexthops []table.NextHop) {
	if len(nexthops) == 0 {
		core.Log.Debug(s, "no nexthop for interest - reject", "name", pkt.Name.String())
		s.RejectPendingInterest(pitEntry)
		return
	}

	now := time.Now()
	for _, out := range pitEntry.OutRecords() {
		if out.LatestNonce != pkt.L3.Interest.Nonce && out.LatestTimestamp.Add(MulticastSuppressionTime).After(now) {
			core.Log.Debug(s, "suppressed interest", "name", pkt.Name.String())
			return
		}
	}

	for _, nh := range nexthops {
		core.Log.Trace(s, "forwarding interest", "name", pkt.Name.String(), "faceid", nh.FaceID)
		s.SendInterest(pkt, pitEntry, nh.FaceID, inFace)
	}
}

func (s *Multicast) BeforeSatisfyInterest(pitEntry *table.PitEntry, inFace uint64) {}

func (s *Multicast) AfterReceiveNack(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64) {
	core.Log.Debug(s, "received nack", "name", pkt.Name.String(), "reason", pkt.L3.Nack.Reason)
	s.SendNacks(pkt, pitEntry, pkt.L3.Nack.Reason, inFace)
}
