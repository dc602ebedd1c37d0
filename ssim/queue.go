package ssim

import "container/heap"

// actionQueue is a priority queue of actions ordered by (time, seq), giving
// O(log n) insertion and extraction of the earliest action and O(n) filtered
// removal. It is the unexported counterpart of the teacher's eventHeap,
// adapted from a queue of sim.Event to a queue of ssim action values.
type actionQueue struct {
	h actionHeap
}

func newActionQueue() *actionQueue {
	q := &actionQueue{h: make(actionHeap, 0)}
	heap.Init(&q.h)
	return q
}

// push inserts an action. No uniqueness constraint: duplicate actions at the
// same time for the same process are permitted.
func (q *actionQueue) push(a action) {
	heap.Push(&q.h, a)
}

// pop removes and returns the action with the smallest (time, seq). Callers
// must check Len first; popping an empty queue panics, matching the "pop
// from empty heap" behavior of container/heap itself.
func (q *actionQueue) pop() action {
	return heap.Pop(&q.h).(action)
}

func (q *actionQueue) len() int {
	return len(q.h)
}

// removeMatching removes every Event-kind action whose payload satisfies
// pred, releasing each removed payload's reference. Init and Stop actions
// are never removed regardless of pred.
func (q *actionQueue) removeMatching(pred func(Event) bool) {
	kept := make(actionHeap, 0, len(q.h))

	for _, a := range q.h {
		if a.kind == ActionEvent && a.event != nil && pred(a.event.payload) {
			a.event.release()
			continue
		}
		kept = append(kept, a)
	}

	q.h = kept
	heap.Init(&q.h)
}

// clear removes every action, releasing every payload reference.
func (q *actionQueue) clear() {
	for _, a := range q.h {
		a.event.release()
	}
	q.h = q.h[:0]
}

// actionHeap implements container/heap.Interface over actions, ordered by
// time and, among equal times, by insertion sequence — this is what turns
// an otherwise-unstable binary heap into the FIFO tie-break the spec's Open
// Question asks implementations to pick deliberately.
type actionHeap []action

func (h actionHeap) Len() int { return len(h) }

func (h actionHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}

func (h actionHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *actionHeap) Push(x interface{}) {
	*h = append(*h, x.(action))
}

func (h *actionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	a := old[n-1]
	*h = old[:n-1]
	return a
}
