package solver

import "sync/atomic"

// budget tracks how many search workers are alive or reserved during one
// solve. The count starts at 1 for the initiating worker. Inside reserve the
// raw counter may briefly exceed max, between the fetch-add and the overflow
// release; the committed value never does.
type budget struct {
	max   int64
	inUse atomic.Int64
}

func newBudget(max int64) *budget {
	b := &budget{max: max}
	b.inUse.Store(1)
	return b
}

// reserve claims capacity for up to k additional workers and returns how many
// fit under max. Reservations that do not fit are released immediately, so a
// branch with more candidates than spare budget degrades to sequential
// exploration instead of blocking.
func (b *budget) reserve(k int64) int64 {
	pre := b.inUse.Add(k) - k
	avail := b.max - pre
	if avail < 0 {
		avail = 0
	}
	if avail > k {
		avail = k
	}
	if over := k - avail; over > 0 {
		b.inUse.Add(-over)
	}
	return avail
}

// release returns one worker's reservation on completion, whatever the
// outcome of its search.
func (b *budget) release() { b.inUse.Add(-1) }
