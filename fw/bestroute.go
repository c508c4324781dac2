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

// BestRouteSuppressionTime is how long a retransmission of the same
// Interest is suppressed on a face that already has an out-record.
const BestRouteSuppressionTime = 400 * time.Millisecond

// BestRoute forwards Interests to the lowest-cost usable next-hop,
// falling through to the next-cheapest on a retry. Grounded on
// fw/fw/bestroute.go.
type BestRoute struct {
	StrategyBase
}

func init() {
	Register("best-route", 1, func() Strategy { return &BestRoute{} })
}

func (s *BestRoute) Instantiate(thread *Thread) {
	s.NewStrategyBase(thread, "best-route", 1)
}

func (s *BestRoute) AfterContentStoreHit(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64) {
	core.Log.Trace(s, "content store hit", "name", pkt.Name.String())
	s.SendData(pkt, pitEntry, inFace, 0)
}

func (s *BestRoute) AfterReceiveData(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64) {
	core.Log.Trace(s, "after receive data", "name", pkt.Name.String(), "inrecords", len(pitEntry.InRecords()))
	for faceID := range pitEntry.InRecords() {
		s.SendData(pkt, pitEntry, faceID, inFace)
	}
}

func (s *BestRoute) AfterReceiveInterest(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64, nexthops []table.NextHop) {
	if len(nexthops) == 0 {
		core.Log.Debug(s, "no nexthop - reject", "name", pkt.Name.String())
		s.RejectPendingInterest(pitEntry)
		return
	}

	now := time.Now()
	for pass := 0; pass < 2; pass++ {
		for _, nh := range nexthops {
			if pass == 0 {
				if out := pitEntry.OutRecords()[nh.FaceID]; out != nil {
					if out.LatestTimestamp.Add(BestRouteSuppressionTime).After(now) {
						core.Log.Debug(s, "suppressed interest - drop", "name", pkt.Name.String())
						return
					}
					continue
				}
			}
			core.Log.Trace(s, "forwarding interest", "name", pkt.Name.String(), "faceid", nh.FaceID)
			if sent := s.SendInterest(pkt, pitEntry, nh.FaceID, inFace); sent {
				return
			}
		}
	}

	core.Log.Debug(s, "no usable nexthop - reject", "name", pkt.Name.String())
	s.RejectPendingInterest(pitEntry)
}

func (s *BestRoute) BeforeSatisfyInterest(pitEntry *table.PitEntry, inFace uint64) {}

func (s *BestRoute) AfterReceiveNack(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64) {
	core.Log.Debug(s, "received nack", "name", pkt.Name.String(), "reason", pkt.L3.Nack.Reason)
	s.SendNacks(pkt, pitEntry, pkt.L3.Nack.Reason, inFace)
}
