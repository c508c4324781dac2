/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import "github.com/ndnfwd/core/ndn"

// NetworkRegion holds the set of producer-region name prefixes
// configured for this forwarder, consulted by the Interest pipeline to
// decide whether an Interest's forwarding hint has already reached its
// producer region. Grounded on the teacher's networkRegionTable in
// network-region.go.
type NetworkRegion struct {
	prefixes []ndn.Name
}

// NewNetworkRegion creates an empty NetworkRegion table.
func NewNetworkRegion() *NetworkRegion {
	return &NetworkRegion{}
}

// Add registers prefix as a producer region, if not already present.
func (n *NetworkRegion) Add(prefix ndn.Name) {
	for _, region := range n.prefixes {
		if region.Equal(prefix) {
			return
		}
	}
	n.prefixes = append(n.prefixes, prefix)
}

// IsProducer reports whether any registered region is a prefix of name.
func (n *NetworkRegion) IsProducer(name ndn.Name) bool {
	for _, region := range n.prefixes {
		if region.IsPrefix(name) {
			return true
		}
	}
	return false
}
