package debtplan

import "container/heap"

// C3: Bounded Min-Heap — best-first priority queue with a capacity cap and
// bad-node eviction (§4.4). Uses the stdlib container/heap interface (the
// idiomatic Go mechanism for a priority queue; none of the retrieval pack
// repos reach for a third-party heap library either) and layers the
// eviction policy on top, which is the actual algorithmic content of C3.

// EvictionMode selects how many worst nodes are dropped when a push would
// exceed the eviction threshold (§4.4).
type EvictionMode int

const (
	EvictStrict     EvictionMode = iota // remove 1 worst node
	EvictBatch                          // remove 10%
	EvictPercentage                     // remove 25%
)

const defaultHeapCapacity = 100_000
const evictionThresholdFraction = 0.9
const worstNodeMargin = 2.0

// heapNode is the internal container/heap element; fCost is the ordering
// key and index is maintained by container/heap for heap.Fix/Remove.
type heapNode struct {
	node  *SearchNode
	index int
}

type nodeHeap []*heapNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].node.FCost != h[j].node.FCost {
		return h[i].node.FCost < h[j].node.FCost
	}
	if h[i].node.GCost != h[j].node.GCost {
		return h[i].node.GCost < h[j].node.GCost
	}
	return h[i].node.insertionOrder < h[j].node.insertionOrder
}
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *nodeHeap) Push(x any) {
	n := x.(*heapNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// BoundedHeap is a best-first frontier capped at Capacity nodes; once the
// size crosses the eviction threshold, Push triggers EvictionMode-governed
// removal of the worst nodes before inserting.
type BoundedHeap struct {
	inner        nodeHeap
	Capacity     int
	Mode         EvictionMode
	nextOrder    int64
	evictedCount int
}

// NewBoundedHeap builds a heap with the given capacity (default
// defaultHeapCapacity when capacity <= 0) and eviction mode.
func NewBoundedHeap(capacity int, mode EvictionMode) *BoundedHeap {
	if capacity <= 0 {
		capacity = defaultHeapCapacity
	}
	bh := &BoundedHeap{
		inner:    make(nodeHeap, 0, capacity),
		Capacity: capacity,
		Mode:     mode,
	}
	heap.Init(&bh.inner)
	return bh
}

// Len reports the current open-set size.
func (bh *BoundedHeap) Len() int { return bh.inner.Len() }

// Evicted reports how many nodes have been dropped over this heap's
// lifetime (observability for a degraded/best-found result).
func (bh *BoundedHeap) Evicted() int { return bh.evictedCount }

// Push inserts node, evicting worst-cost nodes first if needed to respect
// Capacity (§4.4).
func (bh *BoundedHeap) Push(node *SearchNode) {
	threshold := int(float64(bh.Capacity) * evictionThresholdFraction)
	if bh.inner.Len() >= threshold {
		bh.evict()
	}
	node.insertionOrder = bh.nextOrder
	bh.nextOrder++
	heap.Push(&bh.inner, &heapNode{node: node})
	if bh.inner.Len() > bh.Capacity {
		bh.forceRemoveWorst()
	}
}

// Pop removes and returns the minimum-fCost node, or nil if empty.
func (bh *BoundedHeap) Pop() *SearchNode {
	if bh.inner.Len() == 0 {
		return nil
	}
	item := heap.Pop(&bh.inner).(*heapNode)
	return item.node
}

// evict removes worst nodes per Mode: strict removes 1, batch removes 10%,
// percentage removes 25%. "Worst" means fCost more than worstNodeMargin
// above the current best; if fewer than min(target, 100) such candidates
// exist, only half the computed target is evicted (possibly zero) (§4.4).
func (bh *BoundedHeap) evict() {
	n := bh.inner.Len()
	if n == 0 {
		return
	}
	best := bh.inner[0].node.FCost

	var target int
	switch bh.Mode {
	case EvictBatch:
		target = n / 10
	case EvictPercentage:
		target = n / 4
	default: // EvictStrict
		target = 1
	}
	if target < 1 {
		target = 1
	}

	candidates := make([]*heapNode, 0, n)
	for _, hn := range bh.inner {
		if hn.node.FCost > best+worstNodeMargin {
			candidates = append(candidates, hn)
		}
	}

	sampleCap := target
	if sampleCap > 100 {
		sampleCap = 100
	}
	if len(candidates) < sampleCap {
		target = target / 2
	}
	if target <= 0 || len(candidates) == 0 {
		return
	}
	if target > len(candidates) {
		target = len(candidates)
	}

	// Sort candidates by fCost descending (worst first) for deterministic
	// removal order, then remove each by its *live* heap index — that
	// index is kept current by container/heap's Swap on every removal, so
	// pointers (not stale positions) are what makes repeated Remove calls
	// safe here.
	for a := 0; a < len(candidates); a++ {
		for b := a + 1; b < len(candidates); b++ {
			if candidates[b].node.FCost > candidates[a].node.FCost {
				candidates[a], candidates[b] = candidates[b], candidates[a]
			}
		}
	}

	removed := 0
	for _, c := range candidates[:target] {
		if c.index < 0 || c.index >= bh.inner.Len() {
			continue
		}
		heap.Remove(&bh.inner, c.index)
		removed++
		bh.evictedCount++
	}
}

// forceRemoveWorst removes the single worst node when post-eviction size
// still equals capacity (§4.4 final clause).
func (bh *BoundedHeap) forceRemoveWorst() {
	if bh.inner.Len() == 0 {
		return
	}
	worstIdx := 0
	worstCost := bh.inner[0].node.FCost
	for i, hn := range bh.inner {
		if hn.node.FCost > worstCost {
			worstCost = hn.node.FCost
			worstIdx = i
		}
	}
	heap.Remove(&bh.inner, worstIdx)
	bh.evictedCount++
}
