/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

// pqItem pairs a value with the key it is ordered by in an
// expiryQueue. Used by the PIT expiry timer to find the
// next-to-expire entry without a full scan.
type pqItem[T any, K constraints.Ordered] struct {
	value T
	key   K
	index int
}

// expiryQueue is a generic min-heap ordered by key, adapted from the
// container/heap example pattern the teacher's dependency set already
// pulls in golang.org/x/exp/constraints for.
type expiryQueue[T any, K constraints.Ordered] struct {
	items []*pqItem[T, K]
}

func newExpiryQueue[T any, K constraints.Ordered]() *expiryQueue[T, K] {
	q := &expiryQueue[T, K]{}
	heap.Init(q)
	return q
}

func (q *expiryQueue[T, K]) Len() int { return len(q.items) }

func (q *expiryQueue[T, K]) Less(i, j int) bool {
	return q.items[i].key < q.items[j].key
}

func (q *expiryQueue[T, K]) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *expiryQueue[T, K]) Push(x any) {
	item := x.(*pqItem[T, K])
	item.index = len(q.items)
	q.items = append(q.items, item)
}

func (q *expiryQueue[T, K]) Pop() any {
	n := len(q.items)
	item := q.items[n-1]
	q.items[n-1] = nil
	q.items = q.items[:n-1]
	return item
}

// Insert adds value ordered by key and returns the item handle, which
// can be passed to Update or Remove.
func (q *expiryQueue[T, K]) Insert(value T, key K) *pqItem[T, K] {
	item := &pqItem[T, K]{value: value, key: key}
	heap.Push(q, item)
	return item
}

// Update changes item's key and re-establishes heap order.
func (q *expiryQueue[T, K]) Update(item *pqItem[T, K], key K) {
	item.key = key
	heap.Fix(q, item.index)
}

// Remove removes item from the queue.
func (q *expiryQueue[T, K]) Remove(item *pqItem[T, K]) {
	heap.Remove(q, item.index)
}

// PeekKey returns the smallest key in the queue and whether the queue
// is non-empty.
func (q *expiryQueue[T, K]) PeekKey() (K, bool) {
	if len(q.items) == 0 {
		var zero K
		return zero, false
	}
	return q.items[0].key, true
}

// PopMin removes and returns the value with the smallest key.
func (q *expiryQueue[T, K]) PopMin() T {
	return heap.Pop(q).(*pqItem[T, K]).value
}
