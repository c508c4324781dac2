/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"sync/atomic"
	"time"

	"github.com/ndnfwd/core/ndn"

	"github.com/ndnfwd/core/core"
)

// mutCfg holds the table knobs that can change after startup, kept as
// atomics so management code on one goroutine can flip them while a
// forwarding worker reads them on the data path without a lock.
// Grounded on the teacher's table/config.go mutCfg.
var mutCfg = struct {
	csCapacity      atomic.Int32
	csExactCapacity atomic.Int32
	csAdmit         atomic.Bool
	csServe         atomic.Bool
	csAdmitUnsol    atomic.Bool
}{}

// Initialize seeds mutCfg from core.C. Must be called once at startup
// after the configuration file has been loaded into core.C — a plain
// package init() would run before that load and silently pin every
// knob to core.DefaultConfig()'s values, so this mirrors the teacher's
// explicit table.Initialize() call in its startup sequence instead.
func Initialize() {
	mutCfg.csCapacity.Store(int32(core.C.Tables.ContentStore.Capacity))
	mutCfg.csExactCapacity.Store(int32(core.C.Tables.ContentStore.ExactCapacity))
	mutCfg.csAdmit.Store(core.C.Tables.ContentStore.Admit)
	mutCfg.csServe.Store(core.C.Tables.ContentStore.Serve)
	mutCfg.csAdmitUnsol.Store(core.C.Tables.ContentStore.AdmitUnsolicited)
}

// CfgCsAdmit returns whether Data will be admitted to the Content Store.
func CfgCsAdmit() bool { return mutCfg.csAdmit.Load() }

// CfgSetCsAdmit sets whether Data will be admitted to the Content Store.
func CfgSetCsAdmit(admit bool) { mutCfg.csAdmit.Store(admit) }

// CfgCsServe returns whether Data will be served from the Content Store.
func CfgCsServe() bool { return mutCfg.csServe.Load() }

// CfgSetCsServe sets whether Data will be served from the Content Store.
func CfgSetCsServe(serve bool) { mutCfg.csServe.Store(serve) }

// CfgCsAdmitUnsolicited returns whether unsolicited Data (no matching
// PIT entry) may still be cached.
func CfgCsAdmitUnsolicited() bool { return mutCfg.csAdmitUnsol.Load() }

// CfgSetCsAdmitUnsolicited sets the unsolicited-Data admission policy.
func CfgSetCsAdmitUnsolicited(admit bool) { mutCfg.csAdmitUnsol.Store(admit) }

// CfgCsCapacity returns the capacity of each forwarding thread's
// primary Content Store index.
func CfgCsCapacity() int { return int(mutCfg.csCapacity.Load()) }

// CfgSetCsCapacity sets the capacity of each forwarding thread's
// primary Content Store index.
func CfgSetCsCapacity(capacity int) { mutCfg.csCapacity.Store(int32(capacity)) }

// CfgCsExactCapacity returns the capacity of the secondary exact-match
// index; zero means the index is disabled.
func CfgCsExactCapacity() int { return int(mutCfg.csExactCapacity.Load()) }

// CfgSetCsExactCapacity sets the capacity of the secondary exact-match
// index.
func CfgSetCsExactCapacity(capacity int) { mutCfg.csExactCapacity.Store(int32(capacity)) }

// CfgCsReplacementPolicy returns the configured replacement policy
// name for Content Stores in the forwarder.
func CfgCsReplacementPolicy() string {
	return core.C.Tables.ContentStore.ReplacementPolicy
}

// CfgDeadNonceListLifetime returns the lifetime of entries in the dead
// nonce list.
func CfgDeadNonceListLifetime() time.Duration {
	return time.Duration(core.C.Tables.DeadNonceList.LifetimeMillis) * time.Millisecond
}

// NewTables constructs one fully-wired set of per-worker tables: a
// NameTree and the FIB, PIT, Content Store, Measurements, and
// NetworkRegion that anchor onto it. Every forwarding worker owns
// exactly one.
type Tables struct {
	Tree            *NameTree
	Fib             *Fib
	Pit             *Pit
	Cs              *ContentStore
	Measurements    *Measurements
	StrategyChoice  *StrategyChoice
	NetworkRegion   *NetworkRegion
	DeadNonceList   *DeadNonceList
}

// NewTables creates a worker's table set from the current
// configuration, applying the Content Store's admit/serve/
// admit-unsolicited policy and network regions from core.C. The
// StrategyChoice table is left without a root entry; the caller (which
// alone knows how to resolve a configured strategy name against the
// strategy registry) is responsible for inserting one before the
// table is used.
func NewTables() *Tables {
	tree := NewNameTree()
	t := &Tables{
		Tree: tree,
		Fib:  NewFib(tree),
		Pit:  NewPit(tree),
		Cs: NewContentStore(tree, CfgCsCapacity(), policyFor(CfgCsReplacementPolicy()),
			CfgCsExactCapacity()),
		Measurements:   NewMeasurements(tree),
		StrategyChoice: NewStrategyChoice(tree),
		NetworkRegion:  NewNetworkRegion(),
		DeadNonceList:  NewDeadNonceList(CfgDeadNonceListLifetime()),
	}
	t.Cs.SetAdmit(CfgCsAdmit())
	t.Cs.SetServe(CfgCsServe())
	t.Cs.SetAdmitUnsolicited(CfgCsAdmitUnsolicited())
	for _, region := range core.C.Tables.NetworkRegion.Regions {
		t.NetworkRegion.Add(ndn.NameFromString(region))
	}
	return t
}

func policyFor(name string) NewPolicy {
	switch name {
	case "lru", "":
		return LRUPolicy
	default:
		core.Log.Warn(nil, "unknown cs replacement policy, using lru", "policy", name)
		return LRUPolicy
	}
}
