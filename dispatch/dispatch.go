/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package dispatch sits below both fw and face so that neither needs
// to import the other: it holds the face registry and the table of
// forwarding workers that face and fw both touch. Grounded on the
// call sites in the teacher's fw/fw/thread.go and face/table.go, which
// import a github.com/named-data/ndnd/fw/dispatch package that is
// itself absent from the retrieved snapshot.
package dispatch

import (
	"sync"
	"sync/atomic"

	"github.com/ndnfwd/core/core"
	"github.com/ndnfwd/core/ndn"
)

// Face is the subset of a face's link service that the dispatch layer
// and forwarding workers need: enough to hand a packet back out.
// Deliberately narrower than face.Face so this package never imports
// face.
type Face interface {
	FaceID() uint64
	SendPacket(out OutPkt)

	// IsAdHoc reports whether the face's link type lets it receive back
	// a packet it just sent out, so the outgoing pipelines know when the
	// usual "never echo back to the ingress face" rule doesn't apply.
	IsAdHoc() bool
}

// OutPkt is a packet handed to a face to send, plus the PIT token and
// originating face the forwarding pipeline wants echoed back if the
// face ever returns a response (faces in this module never do, but the
// shape is kept for symmetry with the teacher's dispatch.OutPkt).
type OutPkt struct {
	Pkt      *ndn.PendingPacket
	PitToken []byte
	InFace   uint64
}

// FWThread is the subset of a forwarding worker that the dispatch
// layer needs to hand it packets and read back its table sizes for
// management snapshots.
type FWThread interface {
	GetID() int
	QueueInterest(pkt *ndn.PendingPacket)
	QueueData(pkt *ndn.PendingPacket)
	QueueNack(pkt *ndn.PendingPacket)
	GetNumPitEntries() int
	GetNumCsEntries() int
}

// HashTokenEnabled and DualCSEnabled select between the PIT-token
// layouts named in table.EncodePitToken/DecodePitToken. They stand in
// for real build tags so tests can flip them without a second build;
// a release binary would pin both at init time and never touch them
// again.
var (
	HashTokenEnabled = false
	DualCSEnabled    = false
)

var (
	faces   sync.Map // faceID -> Face
	threads []FWThread
	nextID  atomic.Uint64
)

func init() {
	nextID.Store(1)
}

// AddFace registers face under faceID. Grounded on face/table.go's
// Table.Add.
func AddFace(faceID uint64, face Face) {
	faces.Store(faceID, face)
	core.Log.Debug(nil, "registered face", "faceid", faceID)
}

// RemoveFace unregisters the face with the given ID, if any.
func RemoveFace(faceID uint64) {
	faces.Delete(faceID)
	core.Log.Info(nil, "unregistered face", "faceid", faceID)
}

// GetFace returns the face registered under faceID, or nil.
func GetFace(faceID uint64) Face {
	v, ok := faces.Load(faceID)
	if !ok {
		return nil
	}
	return v.(Face)
}

// NextFaceID allocates a fresh, never-reused face ID, starting at 1
// per NFD convention (0 is reserved for "no face" / "from the
// Content Store").
func NextFaceID() uint64 {
	return nextID.Add(1) - 1
}

// InitializeFWThreads registers the set of forwarding workers this
// process runs, replacing any previous set. Called once at startup
// after all worker goroutines have been started.
func InitializeFWThreads(fw []FWThread) {
	threads = fw
}

// GetFWThread returns the worker with the given ID, or nil if out of
// range.
func GetFWThread(id int) FWThread {
	if id < 0 || id >= len(threads) {
		return nil
	}
	return threads[id]
}

// NumFWThreads returns the number of registered forwarding workers.
func NumFWThreads() int { return len(threads) }

// AllFWThreads returns every registered worker, for management
// snapshots that aggregate across all of them.
func AllFWThreads() []FWThread {
	out := make([]FWThread, len(threads))
	copy(out, threads)
	return out
}

// Shard selects which forwarding worker owns name, hashing only its
// first shardPrefixLen components (0 means the whole name), mirroring
// HashNameToFwThread's per-name assignment but generalized per spec's
// configurable shard granularity. Names under /localhost are always
// routed to worker 0, matching the teacher's "send management to
// thread 0" carve-out.
func Shard(name ndn.Name, shardPrefixLen int) int {
	if len(threads) == 0 {
		return 0
	}
	if len(name) > 0 && name[0].Equal(ndn.LOCALHOST) {
		return 0
	}
	key := name
	if shardPrefixLen > 0 && shardPrefixLen < len(name) {
		key = name.Prefix(shardPrefixLen)
	}
	return int(key.Hash() % uint64(len(threads)))
}

// NDropped counts packets dropped because a worker's inbound queue was
// full, one counter per worker, indexed by worker ID. Reset only by
// process restart, matching the teacher's other cumulative counters.
var nDropped []atomic.Uint64

// InitDropCounters sizes the per-worker drop counters; called once
// alongside InitializeFWThreads.
func InitDropCounters(n int) {
	nDropped = make([]atomic.Uint64, n)
}

// RecordDrop increments the drop counter for workerID.
func RecordDrop(workerID int) {
	if workerID >= 0 && workerID < len(nDropped) {
		nDropped[workerID].Add(1)
	}
}

// NDropped returns the number of packets dropped for workerID due to a
// full queue.
func NDropped(workerID int) uint64 {
	if workerID < 0 || workerID >= len(nDropped) {
		return 0
	}
	return nDropped[workerID].Load()
}
