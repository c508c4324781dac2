/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package fw is the per-worker forwarding pipeline: strategies, the
// strategy registry, and the Thread event loop that drives Interest,
// Data, and Nack packets through the tables the table package defines.
package fw

import (
	"fmt"
	"time"

	"github.com/ndnfwd/core/ndn"
	"github.com/ndnfwd/core/table"
)

// Strategy represents a forwarding strategy: the decision logic
// consulted at each of the pipeline's five trigger points. Grounded on
// the teacher's fw/fw/strategy.go Strategy interface, with
// AfterReceiveNack added per spec.md §4.6/§7's Nack pipeline.
type Strategy interface {
	Instantiate(thread *Thread)
	String() string
	Name() ndn.Name

	AfterContentStoreHit(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64)
	AfterReceiveData(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64)
	AfterReceiveInterest(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64, nexthops []table.NextHop)
	BeforeSatisfyInterest(pitEntry *table.PitEntry, inFace uint64)
	AfterReceiveNack(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, inFace uint64)
}

// StrategyBase provides the helper methods every concrete strategy
// embeds, grounded on the teacher's StrategyBase.
type StrategyBase struct {
	thread  *Thread
	name    ndn.Name
	version uint64
	logName string
}

// StrategyPrefix is the root under which every strategy's versioned
// instance name is registered, mirroring the teacher's
// defn.STRATEGY_PREFIX.
var StrategyPrefix = ndn.NameFromString("/localhost/nfd/strategy")

// NewStrategyBase initializes the embedded base; concrete strategies
// call this from their own Instantiate.
func (s *StrategyBase) NewStrategyBase(thread *Thread, name string, version uint64) {
	s.thread = thread
	s.name = StrategyPrefix.Append(ndn.NewGenericComponent(name), ndn.NewVersionComponent(version))
	s.version = version
	s.logName = name
}

func (s *StrategyBase) String() string {
	return fmt.Sprintf("%s (v=%d t=%d)", s.logName, s.version, s.thread.id)
}

// Name returns the strategy's versioned instance name.
func (s *StrategyBase) Name() ndn.Name { return s.name }

// SendInterest forwards pkt to nexthop on behalf of pitEntry, invoking
// the thread's outgoing-Interest pipeline. Returns whether it was
// actually sent.
func (s *StrategyBase) SendInterest(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, nexthop, inFace uint64) bool {
	return s.thread.processOutgoingInterest(pkt, pitEntry, nexthop, inFace)
}

// SendData sends pkt's Data to nexthop, attaching and clearing the
// in-record's PIT token.
func (s *StrategyBase) SendData(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, nexthop, inFace uint64) {
	var pitToken []byte
	if inRecord, ok := pitEntry.InRecords()[nexthop]; ok {
		pitToken = inRecord.PitToken
		pitEntry.RemoveInRecord(nexthop)
	}
	s.thread.processOutgoingData(pkt, nexthop, pitToken, inFace)
}

// SendNacks sends a Nack with reason to every face in pitEntry's
// in-records except skipFace, per spec.md §4.6's "strategy decides
// whether to send_nacks downstream".
func (s *StrategyBase) SendNacks(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, reason ndn.NackReason, skipFace uint64) {
	for face := range pitEntry.InRecords() {
		if face == skipFace {
			continue
		}
		s.thread.processOutgoingNack(pkt, pitEntry, face, reason)
	}
}

// SetExpiry overrides how long pitEntry will wait for a response,
// letting a strategy prolong or shorten the default expiry computed
// from its in-records.
func (s *StrategyBase) SetExpiry(pitEntry *table.PitEntry, duration time.Duration) {
	s.thread.tables.Pit.SetExpiry(pitEntry, duration)
}

// RejectPendingInterest sets pitEntry to expire now: the strategy has
// concluded the Interest cannot be satisfied and there is nothing left
// to try. The worker's next PIT expiry sweep erases and finalizes the
// entry; until then its in-records still catch looping retransmissions.
func (s *StrategyBase) RejectPendingInterest(pitEntry *table.PitEntry) {
	s.thread.tables.Pit.SetExpiry(pitEntry, 0)
}
