/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import "github.com/ndnfwd/core/ndn"

// StrategyChoice is the per-prefix strategy selection table, addressed
// through the shared NameTree. Grounded on the teacher's
// FibStrategyTree.FindStrategyEnc, but the strategy name is kept as a
// direct back-pointer on the NameTree node rather than in a second
// tree, per the unified design every other table in this package uses.
type StrategyChoice struct {
	tree *NameTree
}

// NewStrategyChoice creates a StrategyChoice table backed by tree.
func NewStrategyChoice(tree *NameTree) *StrategyChoice {
	return &StrategyChoice{tree: tree}
}

func hasStrategy(n *Node) bool { return n.strategy != nil }

// Insert registers strategyName as the chosen strategy for prefix.
func (sc *StrategyChoice) Insert(prefix ndn.Name, strategyName ndn.Name) {
	node := sc.tree.Lookup(prefix)
	node.strategy = strategyName
}

// Erase removes the strategy choice at prefix, if any, other than the
// root, which always carries the default strategy.
func (sc *StrategyChoice) Erase(prefix ndn.Name) {
	if len(prefix) == 0 {
		return
	}
	node := sc.tree.FindExact(prefix)
	if node == nil {
		return
	}
	node.strategy = nil
	node.pruneIfEmpty()
}

// FindStrategy returns the strategy name governing name: the nearest
// ancestor (including name itself) with an explicit choice, falling
// back to the root's default. Mirrors FindStrategyEnc's upward walk.
func (sc *StrategyChoice) FindStrategy(name ndn.Name) ndn.Name {
	node := sc.tree.FindLongestPrefixMatch(name, hasStrategy)
	if node == nil {
		return nil
	}
	return node.strategy
}
