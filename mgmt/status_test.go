/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndnfwd/core/core"
	"github.com/ndnfwd/core/dispatch"
	"github.com/ndnfwd/core/fw"
	"github.com/ndnfwd/core/ndn"
)

func TestSnapshotAggregatesAcrossWorkers(t *testing.T) {
	fw.FreezeRegistry()
	core.C.Strategy.Default = "/localhost/nfd/strategy/best-route/v=1"

	t1 := fw.NewThread(0)
	t2 := fw.NewThread(1)
	dispatch.InitializeFWThreads([]dispatch.FWThread{t1, t2})
	t.Cleanup(func() { dispatch.InitializeFWThreads(nil) })

	snap := Snapshot()

	assert.Equal(t, ForwarderVersion, snap.NfdVersion)
	assert.False(t, snap.CurrentTimestamp.Before(snap.StartTimestamp))
	assert.Equal(t, uint64(0), snap.NInInterests)
	assert.Equal(t, uint64(2), snap.NNameTree, "each fresh worker seeds one root StrategyChoice node")
}

// fakeThread satisfies dispatch.FWThread without being a *fw.Thread,
// so workerCounters' type assertion must skip it rather than panic.
type fakeThread struct{}

func (fakeThread) GetID() int                      { return 0 }
func (fakeThread) QueueInterest(*ndn.PendingPacket) {}
func (fakeThread) QueueData(*ndn.PendingPacket)     {}
func (fakeThread) QueueNack(*ndn.PendingPacket)     {}
func (fakeThread) GetNumPitEntries() int            { return 0 }
func (fakeThread) GetNumCsEntries() int             { return 0 }

func TestWorkerCountersSkipsNonFwThreads(t *testing.T) {
	dispatch.InitializeFWThreads([]dispatch.FWThread{fakeThread{}})
	t.Cleanup(func() { dispatch.InitializeFWThreads(nil) })

	assert.Empty(t, workerCounters())
}
