package npuzzle

import (
	"container/heap"
	"errors"
)

var errEmptyFrontier = errors.New("frontier is empty")

// frontierItem points into the solver's node arena. cost is f = g + h; seq is
// the insertion sequence number, which breaks ties so that of two equal-cost
// entries the one pushed first pops first. Ordering is a strict total order:
// "same priority" never means "same board".
type frontierItem struct {
	node int
	cost int
	seq  int
}

type frontier struct {
	items []frontierItem
	seq   int
}

func (f frontier) Len() int { return len(f.items) }

func (f frontier) Less(i, j int) bool {
	a, b := f.items[i], f.items[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return a.seq < b.seq
}

func (f frontier) Swap(i, j int) {
	f.items[i], f.items[j] = f.items[j], f.items[i]
}

func (f *frontier) Push(x any) {
	f.items = append(f.items, x.(frontierItem))
}

func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	item := old[n-1]
	f.items = old[:n-1]
	return item
}

func (f *frontier) push(node, cost int) {
	heap.Push(f, frontierItem{node: node, cost: cost, seq: f.seq})
	f.seq++
}

func (f *frontier) popMin() (frontierItem, error) {
	if len(f.items) == 0 {
		return frontierItem{}, errEmptyFrontier
	}
	return heap.Pop(f).(frontierItem), nil
}

func (f frontier) empty() bool { return len(f.items) == 0 }
