package spf

// nodeItem is a (node, cost) pair carrying a monotonic insertion counter
// so the heap's pop order is deterministic even among equal-cost entries
// (spec §4.2.2, §5 "SPF uses a monotonic counter tie-breaker").
type nodeItem struct {
	node    string
	cost    float64
	counter uint64
}

// nodePQ is a min-heap of *nodeItem ordered by cost ascending, counter
// ascending on ties. Entries are never removed on decrease-key; stale
// entries are instead skipped via the visited set in the main loop
// (the same lazy-decrease-key pattern used by the teacher's Dijkstra).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}

	return pq[i].counter < pq[j].counter
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
