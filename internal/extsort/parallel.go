package extsort

import (
	"container/heap"
	"slices"
	"sync"

	"github.com/gfftools/gffsort/internal/sortkey"
)

// parallelMin is the smallest input worth splitting across workers;
// below it goroutine and merge overhead dominates.
const parallelMin = 8192

// SortItems stably sorts items in place by composite key under spec.
// With workers > 1 and a large enough input, contiguous partitions are
// sorted concurrently and heap-merged; the partition-index tie-break
// keeps the result identical to a sequential stable sort.
func SortItems(items []Item, spec sortkey.Spec, workers int) {
	cmpItems := func(a, b Item) int {
		return sortkey.Compare(a.Key, b.Key, spec)
	}

	if workers < 2 || len(items) < parallelMin {
		slices.SortStableFunc(items, cmpItems)
		return
	}

	if workers > len(items)/parallelMin {
		workers = len(items) / parallelMin
	}

	runs := make([][]Item, 0, workers)
	size := (len(items) + workers - 1) / workers
	for lo := 0; lo < len(items); lo += size {
		hi := min(lo+size, len(items))
		runs = append(runs, items[lo:hi])
	}

	var wg sync.WaitGroup
	for _, part := range runs {
		wg.Add(1)
		go func(part []Item) {
			defer wg.Done()
			slices.SortStableFunc(part, cmpItems)
		}(part)
	}
	wg.Wait()

	mergeRuns(items, runs, spec)
}

// runCursor walks one sorted partition during the merge.
type runCursor struct {
	id    int
	items []Item
	pos   int
}

// runHeap orders cursors by current key, breaking ties on partition
// index. Partitions are contiguous slices of the input, so the index
// order is the original input order.
type runHeap struct {
	cursors []*runCursor
	spec    sortkey.Spec
}

func (h *runHeap) Len() int {
	return len(h.cursors)
}

func (h *runHeap) Less(i, j int) bool {
	a, b := h.cursors[i], h.cursors[j]
	if d := sortkey.Compare(a.items[a.pos].Key, b.items[b.pos].Key, h.spec); d != 0 {
		return d < 0
	}
	return a.id < b.id
}

func (h *runHeap) Swap(i, j int) {
	h.cursors[i], h.cursors[j] = h.cursors[j], h.cursors[i]
}

func (h *runHeap) Push(x any) {
	h.cursors = append(h.cursors, x.(*runCursor))
}

func (h *runHeap) Pop() any {
	old := h.cursors
	n := len(old)
	x := old[n-1]
	h.cursors = old[:n-1]
	return x
}

// mergeRuns merges sorted partitions back into items.
func mergeRuns(items []Item, runs [][]Item, spec sortkey.Spec) {
	h := &runHeap{spec: spec}
	for i, part := range runs {
		if len(part) > 0 {
			h.cursors = append(h.cursors, &runCursor{id: i, items: part})
		}
	}
	heap.Init(h)

	out := make([]Item, 0, len(items))
	for h.Len() > 0 {
		cur := h.cursors[0]
		out = append(out, cur.items[cur.pos])
		cur.pos++
		if cur.pos < len(cur.items) {
			heap.Fix(h, 0)
		} else {
			heap.Pop(h)
		}
	}
	copy(items, out)
}
