/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package mgmt aggregates forwarder-wide state for status reporting.
// Rendering that snapshot onto the wire (the NFD management protocol's
// TLV dataset encoding) is out of scope for this module; mgmt only
// builds the struct a management face would serialize.
package mgmt

import (
	"time"

	"github.com/ndnfwd/core/core"
	"github.com/ndnfwd/core/dispatch"
	"github.com/ndnfwd/core/fw"
)

// StatusSnapshot is a point-in-time summary of the whole forwarder,
// aggregated by copy-and-sum across every worker's counters. Grounded
// on forwarder-status.go's GeneralStatus and defn/counters.go's
// FWThreadCounters, extended with the Nack counters and the NFib/
// NNameTree/NMeasurements fields spec.md's status section names.
type StatusSnapshot struct {
	NfdVersion       string
	StartTimestamp   time.Time
	CurrentTimestamp time.Time

	NNameTree     uint64
	NFib          uint64
	NPit          uint64
	NMeasurements uint64
	NCs           uint64

	NInInterests          uint64
	NOutInterests         uint64
	NInData               uint64
	NOutData              uint64
	NInNacks              uint64
	NOutNacks             uint64
	NSatisfiedInterests   uint64
	NUnsatisfiedInterests uint64
}

// ForwarderVersion is reported in every status snapshot in place of a
// build-stamped version string, since this module has no release
// pipeline of its own.
const ForwarderVersion = "ndnfwd/0.1"

// Snapshot aggregates StatusSnapshot by summing every registered
// worker's counters. Grounded on ForwarderStatusModule.general's
// per-thread accumulation loop.
func Snapshot() StatusSnapshot {
	s := StatusSnapshot{
		NfdVersion:       ForwarderVersion,
		StartTimestamp:   core.StartTimestamp,
		CurrentTimestamp: time.Now(),
	}
	for _, c := range workerCounters() {
		s.NNameTree += uint64(c.NNameTreeEntries)
		s.NFib += uint64(c.NFibEntries)
		s.NPit += uint64(c.NPitEntries)
		s.NCs += uint64(c.NCsEntries)
		s.NMeasurements += uint64(c.NMeasurementsEntries)
		s.NInInterests += c.NInInterests
		s.NOutInterests += c.NOutInterests
		s.NInData += c.NInData
		s.NOutData += c.NOutData
		s.NInNacks += c.NInNacks
		s.NOutNacks += c.NOutNacks
		s.NSatisfiedInterests += c.NSatisfiedInterests
		s.NUnsatisfiedInterests += c.NUnsatisfiedInterests
	}
	return s
}

// workerCounters collects each registered worker's counter snapshot.
// dispatch.FWThread deliberately exposes only what the dispatch layer
// itself needs, so this type-asserts down to the concrete *fw.Thread
// to reach the fuller Counters() struct.
func workerCounters() []fw.Counters {
	threads := dispatch.AllFWThreads()
	out := make([]fw.Counters, 0, len(threads))
	for _, t := range threads {
		if thread, ok := t.(*fw.Thread); ok {
			out = append(out, thread.Counters())
		}
	}
	return out
}
