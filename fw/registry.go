/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"sort"

	"github.com/ndnfwd/core/core"
	"github.com/ndnfwd/core/ndn"
)

type registryEntry struct {
	unversioned ndn.Name
	version     uint64
	full        ndn.Name
	newFn       func() Strategy
}

// registryEntries accumulates via Register and is sorted and locked by
// FreezeRegistry, mirroring the teacher's strategyInit/StrategyVersions
// pair in fw/fw/strategy-loader.go but keyed by full versioned name
// instead of a flat unversioned-name-to-versions map, since the
// registry itself now needs to do versioned lookups.
var registryEntries []registryEntry
var registryFrozen bool

// Register adds a strategy constructor under the given unversioned
// name and version. Must be called from an init() before
// FreezeRegistry runs; panics otherwise, since registering a strategy
// after workers have started would leave some workers without it.
func Register(unversionedName string, version uint64, newFn func() Strategy) {
	if registryFrozen {
		panic("fw: Register called after FreezeRegistry")
	}
	unversioned := StrategyPrefix.Append(ndn.NewGenericComponent(unversionedName))
	full := unversioned.Append(ndn.NewVersionComponent(version))
	registryEntries = append(registryEntries, registryEntry{
		unversioned: unversioned,
		version:     version,
		full:        full,
		newFn:       newFn,
	})
}

// FreezeRegistry sorts the registered strategies by unversioned name
// then ascending version and locks the registry against further
// registration. Called once at startup before any worker thread is
// created.
func FreezeRegistry() {
	sort.Slice(registryEntries, func(i, j int) bool {
		a, b := registryEntries[i], registryEntries[j]
		if c := a.unversioned.Compare(b.unversioned); c != 0 {
			return c < 0
		}
		return a.version < b.version
	})
	registryFrozen = true
}

// Lookup resolves instanceName to the full versioned name of a
// registered strategy:
//   - if instanceName carries a version, returns the lowest registered
//     version at or above it sharing the same unversioned name ("same
//     line, same-or-newer version"),
//   - if it carries no version, returns the highest registered version
//     of that unversioned name.
//
// This is not present verbatim in the teacher, which resolves
// strategies by a flat hash of the complete instance name; it is
// grounded on the teacher's ordered-registration-then-freeze lifecycle
// in strategy-loader.go, generalized to the versioned matching rule.
func Lookup(instanceName ndn.Name) (ndn.Name, bool) {
	if idx, version, ok := instanceName.IsVersioned(); ok {
		unversioned := instanceName.Prefix(idx)
		var best *registryEntry
		for i := range registryEntries {
			e := &registryEntries[i]
			if !e.unversioned.Equal(unversioned) || e.version < version {
				continue
			}
			if best == nil || e.version < best.version {
				best = e
			}
		}
		if best == nil {
			return nil, false
		}
		return best.full, true
	}

	var best *registryEntry
	for i := range registryEntries {
		e := &registryEntries[i]
		if !e.unversioned.Equal(instanceName) {
			continue
		}
		if best == nil || e.version > best.version {
			best = e
		}
	}
	if best == nil {
		return nil, false
	}
	return best.full, true
}

// InstantiateAll builds one instance of every registered strategy for
// thread, keyed by the strategy's full name hash. Mirrors
// InstantiateStrategies in strategy-loader.go.
func InstantiateAll(thread *Thread) map[uint64]Strategy {
	strategies := make(map[uint64]Strategy, len(registryEntries))
	for _, e := range registryEntries {
		strategy := e.newFn()
		strategy.Instantiate(thread)
		strategies[strategy.Name().Hash()] = strategy
		core.Log.Debug(nil, "instantiated strategy", "strategy", strategy.Name().String(), "thread", thread.id)
	}
	return strategies
}
