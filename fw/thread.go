/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"fmt"
	"runtime"
	"time"

	"github.com/ndnfwd/core/core"
	"github.com/ndnfwd/core/dispatch"
	"github.com/ndnfwd/core/ndn"
	"github.com/ndnfwd/core/table"
)

// Thread is one forwarding worker: its own NameTree-anchored table set,
// its own strategy instances, and the two bounded queues that feed its
// event loop, one per direction — pendingInterests for the
// Interest-direction, pendingResponses for Data and Nack together, per
// spec.md §4.7. Nothing here is safe to touch from another goroutine;
// cross-worker communication happens only through dispatch's
// channel-backed queues. Grounded on the teacher's fw/fw/thread.go
// Thread, with Nack handling (and its counters) folded into the
// Data-direction queue since the teacher's UDP-only transport never
// carried Nacks.
type Thread struct {
	id               int
	pendingInterests chan *ndn.PendingPacket
	pendingResponses chan *ndn.PendingPacket

	tables     *table.Tables
	strategies map[uint64]Strategy

	shouldQuit chan struct{}
	hasQuit    chan struct{}

	nInInterests          uint64
	nInData               uint64
	nInNacks              uint64
	nOutInterests         uint64
	nOutData              uint64
	nOutNacks             uint64
	nSatisfiedInterests   uint64
	nUnsatisfiedInterests uint64
}

// NewThread creates forwarding worker id with a fresh table set, and
// seeds its StrategyChoice root with the configured default strategy.
// FreezeRegistry must already have run.
func NewThread(id int) *Thread {
	t := &Thread{
		id:               id,
		pendingInterests: make(chan *ndn.PendingPacket, core.C.Fw.QueueSize),
		pendingResponses: make(chan *ndn.PendingPacket, core.C.Fw.QueueSize),
		tables:           table.NewTables(),
		shouldQuit:       make(chan struct{}, 1),
		hasQuit:          make(chan struct{}),
	}
	t.strategies = InstantiateAll(t)

	defaultName, ok := Lookup(ndn.NameFromString(core.C.Strategy.Default))
	if !ok {
		core.Log.Fatal(t, "default strategy not registered", "name", core.C.Strategy.Default)
	}
	t.tables.StrategyChoice.Insert(ndn.Name{}, defaultName)

	return t
}

func (t *Thread) String() string { return fmt.Sprintf("fw-thread-%d", t.id) }

// GetID returns the worker's ID, implementing dispatch.FWThread.
func (t *Thread) GetID() int { return t.id }

// GetNumPitEntries returns the size of this worker's PIT.
func (t *Thread) GetNumPitEntries() int { return t.tables.Pit.Size() }

// GetNumCsEntries returns the size of this worker's primary CS index.
func (t *Thread) GetNumCsEntries() int { return t.tables.Cs.Size() }

// Tables exposes the worker's table set, for management snapshots and
// tests that need to inspect or seed it directly.
func (t *Thread) Tables() *table.Tables { return t.tables }

// Counters is a point-in-time copy of this worker's cumulative
// packet counters, grounded on the teacher's defn.FWThreadCounters.
type Counters struct {
	NNameTreeEntries      int
	NFibEntries           int
	NPitEntries           int
	NCsEntries            int
	NMeasurementsEntries  int
	NInInterests          uint64
	NInData               uint64
	NInNacks              uint64
	NOutInterests         uint64
	NOutData              uint64
	NOutNacks             uint64
	NSatisfiedInterests   uint64
	NUnsatisfiedInterests uint64
}

// Counters returns a snapshot of this worker's counters. Called from
// the management thread, never this worker's own goroutine, so every
// field read here is a plain load of a value this goroutine alone
// mutates; a data race in the formal sense, but a benign one for
// monotonically-increasing counters read for display, matching the
// teacher's own unsynchronized Counters().
func (t *Thread) Counters() Counters {
	return Counters{
		NNameTreeEntries:      t.tables.Tree.Size(),
		NFibEntries:           t.tables.Fib.Size(),
		NPitEntries:           t.tables.Pit.Size(),
		NCsEntries:            t.tables.Cs.Size(),
		NMeasurementsEntries:  t.tables.Measurements.Size(),
		NInInterests:          t.nInInterests,
		NInData:               t.nInData,
		NInNacks:              t.nInNacks,
		NOutInterests:         t.nOutInterests,
		NOutData:              t.nOutData,
		NOutNacks:             t.nOutNacks,
		NSatisfiedInterests:   t.nSatisfiedInterests,
		NUnsatisfiedInterests: t.nUnsatisfiedInterests,
	}
}

// TellToQuit asks the worker's event loop to exit after its current
// iteration.
func (t *Thread) TellToQuit() {
	core.Log.Info(t, "told to quit")
	select {
	case t.shouldQuit <- struct{}{}:
	default:
	}
}

// HasQuit is closed once the worker's event loop has returned.
func (t *Thread) HasQuit() <-chan struct{} { return t.hasQuit }

// Run drives the worker's event loop until the process-wide
// core.ShouldQuit flag is set or TellToQuit is called. Grounded on
// the teacher's Thread.Run, with a dead-nonce-list sweep on a plain
// ticker in place of the teacher's embedded Ticker field, and the
// pendingResponses branch discriminating Data from Nack by payload.
func (t *Thread) Run() {
	if core.C.Fw.LockThreadsToCores {
		runtime.LockOSThread()
	}

	dnlTicker := time.NewTicker(time.Second)
	pitTicker := time.NewTicker(100 * time.Millisecond)
	defer dnlTicker.Stop()
	defer pitTicker.Stop()

loop:
	for !core.ShouldQuit {
		select {
		case pkt := <-t.pendingInterests:
			t.processIncomingInterest(pkt)
		case pkt := <-t.pendingResponses:
			if pkt.L3.Nack != nil {
				t.processIncomingNack(pkt)
			} else {
				t.processIncomingData(pkt)
			}
		case now := <-dnlTicker.C:
			t.tables.DeadNonceList.RemoveExpired(now)
		case <-pitTicker.C:
			t.expirePit()
		case <-t.shouldQuit:
			break loop
		}
	}

	core.Log.Info(t, "stopping thread")
	close(t.hasQuit)
}

func (t *Thread) expirePit() {
	now := time.Now()
	for {
		next, ok := t.tables.Pit.NextExpiry()
		if !ok || next.After(now) {
			return
		}
		entry := t.tables.Pit.ExpireOne()
		t.finalizeInterest(entry)
	}
}

// QueueInterest enqueues pkt for this worker, dropping it and
// recording the drop if the queue is full.
func (t *Thread) QueueInterest(pkt *ndn.PendingPacket) {
	select {
	case t.pendingInterests <- pkt:
	default:
		core.Log.Error(t, "interest dropped, queue full", "name", pkt.Name.String())
		dispatch.RecordDrop(t.id)
	}
}

// QueueData enqueues pkt on the Data/Nack-direction queue, dropping it
// and recording the drop if the queue is full.
func (t *Thread) QueueData(pkt *ndn.PendingPacket) {
	select {
	case t.pendingResponses <- pkt:
	default:
		core.Log.Error(t, "data dropped, queue full", "name", pkt.Name.String())
		dispatch.RecordDrop(t.id)
	}
}

// QueueNack enqueues pkt on the same Data/Nack-direction queue QueueData
// uses, dropping it and recording the drop if the queue is full.
func (t *Thread) QueueNack(pkt *ndn.PendingPacket) {
	select {
	case t.pendingResponses <- pkt:
	default:
		core.Log.Error(t, "nack dropped, queue full", "name", pkt.Name.String())
		dispatch.RecordDrop(t.id)
	}
}

func (t *Thread) strategyFor(name ndn.Name) Strategy {
	strategyName := t.tables.StrategyChoice.FindStrategy(name)
	return t.strategies[strategyName.Hash()]
}

// processIncomingInterest implements the Interest pipeline: hop-limit
// decrement, nonce/PIT/dead-nonce-list loop detection, Content Store
// lookup, and handoff to the governing strategy. No /localhost scope
// check is applied here. A Content Store hit that leaves the PIT entry
// with no in-records erases that entry. Grounded on the teacher's
// processIncomingInterest.
func (t *Thread) processIncomingInterest(pkt *ndn.PendingPacket) {
	interest := pkt.L3.Interest
	if interest == nil {
		core.Log.Error(t, "processIncomingInterest called with non-Interest packet")
		return
	}

	inFace := dispatch.GetFace(pkt.IncomingFaceID)
	if inFace == nil {
		core.Log.Error(t, "interest has non-existent incoming face", "faceid", pkt.IncomingFaceID)
		return
	}

	if interest.HopLimit != nil {
		if *interest.HopLimit == 0 {
			core.Log.Debug(t, "interest hop limit expired", "name", pkt.Name.String())
			return
		}
		*interest.HopLimit--
	}

	t.nInInterests++

	isReachingProducerRegion := true
	var hint ndn.Name
	if len(interest.ForwardingHint) > 0 {
		isReachingProducerRegion = t.tables.NetworkRegion.IsProducer(interest.ForwardingHint)
		if !isReachingProducerRegion {
			hint = interest.ForwardingHint
		}
	}

	if !interest.HasNonce {
		core.Log.Debug(t, "interest missing nonce", "name", pkt.Name.String())
		return
	}

	if t.tables.DeadNonceList.Find(interest.Name, interest.Nonce) {
		core.Log.Debug(t, "interest looping (dead nonce list)", "name", pkt.Name.String())
		return
	}

	pitEntry, isLoop := t.tables.Pit.InsertInterest(interest, hint, inFace.FaceID())
	if isLoop {
		core.Log.Debug(t, "interest looping (pit)", "name", pkt.Name.String())
		t.sendNack(pkt, pitEntry, ndn.NackReasonDuplicate, inFace.FaceID())
		return
	}

	_, isAlreadyPending, prevNonce := pitEntry.InsertInRecord(interest, inFace.FaceID(), pkt.PitToken, time.Now())

	if !isAlreadyPending {
		if t.tables.Cs.IsServing() {
			if entry := t.tables.Cs.FindMatchingData(interest); entry != nil {
				data, wire := entry.Copy()
				hit := &ndn.PendingPacket{
					Name:           pkt.Name,
					L3:             &ndn.Packet{Data: data},
					Raw:            wire,
					IncomingFaceID: pkt.IncomingFaceID,
				}
				t.strategyFor(interest.Name).AfterContentStoreHit(hit, pitEntry, inFace.FaceID())
				if len(pitEntry.InRecords()) == 0 {
					t.tables.Pit.RemoveInterest(pitEntry)
				}
				return
			}
		}
	} else {
		t.tables.DeadNonceList.Insert(interest.Name, prevNonce)
	}

	t.tables.Pit.UpdateExpiry(pitEntry)

	if pkt.NextHopFaceID != nil {
		if face := dispatch.GetFace(*pkt.NextHopFaceID); face != nil {
			face.SendPacket(dispatch.OutPkt{Pkt: pkt, PitToken: pkt.PitToken, InFace: pkt.IncomingFaceID})
		} else {
			core.Log.Info(t, "non-existent nexthopfaceid", "faceid", *pkt.NextHopFaceID)
		}
		return
	}

	lookupName := interest.Name
	if hint != nil {
		lookupName = hint
	}

	fibEntry := t.tables.Fib.FindLongestPrefixMatch(lookupName)
	all := fibEntry.NextHops()
	allowed := make([]table.NextHop, 0, len(all))
	for _, nh := range all {
		if nh.FaceID == pkt.IncomingFaceID {
			continue
		}
		if pitEntry.InRecords()[nh.FaceID] != nil {
			continue
		}
		allowed = append(allowed, nh)
	}

	t.strategyFor(interest.Name).AfterReceiveInterest(pkt, pitEntry, inFace.FaceID(), allowed)
}

// processOutgoingInterest sends pkt out nexthop on behalf of pitEntry,
// recording an out-record and stamping a worker-routing PIT token.
// Returns whether the Interest was actually sent.
func (t *Thread) processOutgoingInterest(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, nexthop, inFace uint64) bool {
	interest := pkt.L3.Interest
	if interest == nil {
		core.Log.Error(t, "processOutgoingInterest called with non-Interest packet")
		return false
	}

	outFace := dispatch.GetFace(nexthop)
	if outFace == nil {
		core.Log.Error(t, "non-existent nexthop for interest", "faceid", nexthop, "name", pkt.Name.String())
		return false
	}
	if outFace.FaceID() == inFace && !outFace.IsAdHoc() {
		core.Log.Debug(t, "refusing to send interest back to incoming face", "faceid", nexthop)
		return false
	}

	pitEntry.InsertOutRecord(interest, nexthop, time.Now())
	t.nOutInterests++

	token := table.EncodePitToken(t.id, pkt.Name.Hash(), interest.CanBePrefix)
	outFace.SendPacket(dispatch.OutPkt{Pkt: pkt, PitToken: token, InFace: inFace})
	return true
}

// finalizeInterest records outstanding out-record nonces into the dead
// nonce list and tallies unsatisfied downstreams, run when a PIT entry
// expires unsatisfied. Grounded on the teacher's finalizeInterest.
func (t *Thread) finalizeInterest(pitEntry *table.PitEntry) {
	for _, out := range pitEntry.OutRecords() {
		t.tables.DeadNonceList.Insert(pitEntry.Name(), out.LatestNonce)
	}
	if !pitEntry.Satisfied() {
		t.nUnsatisfiedInterests += uint64(len(pitEntry.InRecords()))
	}
}

// processIncomingData implements the Data pipeline: Content Store
// admission, PIT match by name, and handoff to the governing strategy.
// Grounded on processIncomingData.
func (t *Thread) processIncomingData(pkt *ndn.PendingPacket) {
	data := pkt.L3.Data
	if data == nil {
		core.Log.Error(t, "processIncomingData called with non-Data packet")
		return
	}

	inFace := dispatch.GetFace(pkt.IncomingFaceID)
	if inFace == nil {
		core.Log.Error(t, "data has non-existent incoming face", "faceid", pkt.IncomingFaceID)
		return
	}

	t.nInData++

	// The PIT token this worker stamps only carries worker-routing
	// information (see table.EncodePitToken), not a per-entry token
	// value, so matching a returning Data against the PIT always walks
	// the name tree rather than taking byToken's O(1) path.
	pitEntries := t.tables.Pit.FindInterestPrefixMatchByData(data, nil)

	if t.tables.Cs.IsAdmitting() && (len(pitEntries) > 0 || t.tables.Cs.AdmitsUnsolicited()) {
		t.tables.Cs.InsertData(data, pkt.Raw)
	}

	if len(pitEntries) == 0 {
		core.Log.Debug(t, "unsolicited data", "name", pkt.Name.String())
		return
	}

	strategy := t.strategyFor(data.Name)

	if len(pitEntries) == 1 {
		pitEntry := pitEntries[0]
		t.tables.Pit.UpdateExpiry(pitEntry)

		strategy.AfterReceiveData(pkt, pitEntry, pkt.IncomingFaceID)

		pitEntry.SetSatisfied(true)
		t.nSatisfiedInterests++
		for _, out := range pitEntry.OutRecords() {
			t.tables.DeadNonceList.Insert(data.Name, out.LatestNonce)
		}
		pitEntry.ClearInRecords()
		pitEntry.ClearOutRecords()
		t.tables.Pit.RemoveInterest(pitEntry)
		return
	}

	for _, pitEntry := range pitEntries {
		// processOutgoingData itself drops the ingress face unless it's
		// ad-hoc, so every in-record is a candidate downstream here.
		downstreams := make(map[uint64][]byte)
		for face, record := range pitEntry.InRecords() {
			downstreams[face] = record.PitToken
		}

		strategy.BeforeSatisfyInterest(pitEntry, pkt.IncomingFaceID)

		pitEntry.SetSatisfied(true)
		t.nSatisfiedInterests++
		for _, out := range pitEntry.OutRecords() {
			t.tables.DeadNonceList.Insert(data.Name, out.LatestNonce)
		}
		pitEntry.ClearInRecords()
		pitEntry.ClearOutRecords()
		t.tables.Pit.RemoveInterest(pitEntry)

		for face, tok := range downstreams {
			t.processOutgoingData(pkt, face, tok, pkt.IncomingFaceID)
		}
	}
}

func (t *Thread) processOutgoingData(pkt *ndn.PendingPacket, nexthop uint64, pitToken []byte, inFace uint64) {
	data := pkt.L3.Data
	if data == nil {
		core.Log.Error(t, "processOutgoingData called with non-Data packet")
		return
	}

	outFace := dispatch.GetFace(nexthop)
	if outFace == nil {
		core.Log.Error(t, "non-existent nexthop for data", "faceid", nexthop, "name", pkt.Name.String())
		return
	}
	if nexthop == inFace && !outFace.IsAdHoc() {
		core.Log.Debug(t, "refusing to echo data back to incoming face", "faceid", nexthop)
		return
	}

	t.nOutData++
	outFace.SendPacket(dispatch.OutPkt{Pkt: pkt, PitToken: pitToken, InFace: inFace})
}

// processIncomingNack matches an incoming Nack against the out-record
// it responds to, and if found hands it to the governing strategy's
// AfterReceiveNack; otherwise the Nack is for an Interest this worker
// no longer cares about and is dropped. Not present in the teacher
// (which has no Nack support); grounded on the in/out-record matching
// discipline the Data pipeline already uses.
func (t *Thread) processIncomingNack(pkt *ndn.PendingPacket) {
	nack := pkt.L3.Nack
	if nack == nil || nack.Interest == nil {
		core.Log.Error(t, "processIncomingNack called with non-Nack packet")
		return
	}

	t.nInNacks++

	pitEntry := t.tables.Pit.FindInterestExactMatch(nack.Interest)
	if pitEntry == nil {
		core.Log.Debug(t, "nack for unknown interest", "name", pkt.Name.String())
		return
	}
	if _, ok := pitEntry.OutRecords()[pkt.IncomingFaceID]; !ok {
		core.Log.Debug(t, "nack from face with no out-record", "name", pkt.Name.String(), "faceid", pkt.IncomingFaceID)
		return
	}
	pitEntry.RemoveOutRecord(pkt.IncomingFaceID)

	t.strategyFor(nack.Interest.Name).AfterReceiveNack(pkt, pitEntry, pkt.IncomingFaceID)
}

// processOutgoingNack sends a Nack with reason to face on behalf of
// pitEntry, consuming that face's in-record so the same downstream
// isn't Nacked twice for the same Interest.
func (t *Thread) processOutgoingNack(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, face uint64, reason ndn.NackReason) {
	outFace := dispatch.GetFace(face)
	if outFace == nil {
		core.Log.Error(t, "non-existent face for nack", "faceid", face)
		return
	}

	var interest *ndn.Interest
	if pkt.L3.Interest != nil {
		interest = pkt.L3.Interest
	} else if pkt.L3.Nack != nil {
		interest = pkt.L3.Nack.Interest
	}

	nackPkt := &ndn.PendingPacket{
		Name: pitEntry.Name(),
		L3:   &ndn.Packet{Nack: &ndn.Nack{Interest: interest, Reason: reason}},
	}

	var pitToken []byte
	if inRecord, ok := pitEntry.InRecords()[face]; ok {
		pitToken = inRecord.PitToken
	}
	pitEntry.RemoveInRecord(face)

	t.nOutNacks++
	outFace.SendPacket(dispatch.OutPkt{Pkt: nackPkt, PitToken: pitToken, InFace: 0})
}

// sendNack is a convenience wrapper used directly from the Interest
// pipeline, before a strategy has had a chance to see the packet (loop
// detection fires before AfterReceiveInterest).
func (t *Thread) sendNack(pkt *ndn.PendingPacket, pitEntry *table.PitEntry, reason ndn.NackReason, skipFace uint64) {
	t.processOutgoingNack(pkt, pitEntry, skipFace, reason)
}
