package solver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"svw.info/parsudoku/internal/domain"
	"svw.info/parsudoku/internal/ports"
)

// ErrUnsolvable is returned when the search exhausts every branch without
// finding a solution.
var ErrUnsolvable = errors.New("unsolvable puzzle")

// ParallelSolver interleaves naked-single propagation with backtracking
// search, forking goroutine workers at branch points while the worker budget
// allows. With maxWorkers == 1 no worker is ever spawned and the search is
// plain sequential backtracking.
type ParallelSolver struct {
	maxWorkers int
}

// NewParallelSolver returns a solver that keeps at most maxWorkers
// concurrently active workers, counting the initiating one.
func NewParallelSolver(maxWorkers int) (*ParallelSolver, error) {
	if maxWorkers < 1 {
		return nil, fmt.Errorf("solver: max workers must be positive, got %d", maxWorkers)
	}
	return &ParallelSolver{maxWorkers: maxWorkers}, nil
}

// run holds the coordination state shared by all workers of one Solve call.
// It is per-call rather than package-global so independent solves can coexist
// in one process.
type run struct {
	ctx      context.Context
	budget   *budget
	found    atomic.Bool
	solution atomic.Pointer[domain.Board]
	nodes    atomic.Int64
	spawned  atomic.Int64
}

// win publishes b as the solution. The pointer CAS picks the single winner;
// the found flag is set afterward so that any worker observing it can rely on
// the solution pointer being in place.
func (r *run) win(b domain.Board) bool {
	if r.solution.CompareAndSwap(nil, &b) {
		r.found.Store(true)
	}
	return true
}

// search explores the board from the resumption point (row, col): every cell
// before it in row-major order was already settled when the parent branched.
// The board is received by value; each recursion and each spawned worker owns
// an independent copy.
func (r *run) search(b domain.Board, row, col int) bool {
	// Cancellation is best effort: a worker that races past this check simply
	// finishes its own subtree.
	if r.found.Load() || r.ctx.Err() != nil {
		return false
	}
	r.nodes.Add(1)

	switch Propagate(&b) {
	case Contradiction:
		return false
	case Complete:
		return r.win(b)
	}

	br, bc, ok := b.FirstUnsettled(row, col)
	if !ok {
		// Unreachable given the resumption invariant; treat as a dead branch.
		return false
	}
	cell := b.Cells[br][bc]

	toSpawn := r.budget.reserve(int64(cell.CandidateCount()))

	var (
		wg       sync.WaitGroup
		childWon atomic.Bool
		seqWon   bool
	)
	for v := uint8(1); v <= 9; v++ {
		if !cell.Has(v) {
			continue
		}
		child := b
		// An invalidating settle is caught by the child's propagation pass.
		child.Settle(br, bc, v)
		if toSpawn > 0 {
			toSpawn--
			r.spawned.Add(1)
			wg.Add(1)
			go func(cb domain.Board) {
				defer wg.Done()
				defer r.budget.release()
				if r.search(cb, br, bc+1) {
					childWon.Store(true)
				}
			}(child)
			continue
		}
		if r.search(child, br, bc+1) {
			seqWon = true
			break
		}
	}
	wg.Wait()
	return seqWon || childWon.Load()
}

// Solve searches for the first solution of b. It returns ErrUnsolvable when
// every branch is exhausted, or the context error when the caller canceled.
func (s *ParallelSolver) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	start := time.Now()
	r := &run{ctx: ctx, budget: newBudget(int64(s.maxWorkers))}
	ok := r.search(*b, 0, 0)
	st := ports.Stats{
		Nodes:    int(r.nodes.Load()),
		Workers:  int(r.spawned.Load()),
		Duration: time.Since(start),
	}
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		return nil, st, ErrUnsolvable
	}
	return r.solution.Load(), st, nil
}

// Unique counts solutions up to 2, sequentially, and reports whether exactly
// one exists.
func (s *ParallelSolver) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	start := time.Now()
	nodes := 0
	count := 0

	var dfs func(b domain.Board, row, col int) bool
	dfs = func(b domain.Board, row, col int) bool {
		if ctx.Err() != nil || count >= 2 {
			return true // stop early
		}
		nodes++
		switch Propagate(&b) {
		case Contradiction:
			return false
		case Complete:
			count++
			return count >= 2
		}
		br, bc, ok := b.FirstUnsettled(row, col)
		if !ok {
			return false
		}
		cell := b.Cells[br][bc]
		for v := uint8(1); v <= 9; v++ {
			if !cell.Has(v) {
				continue
			}
			child := b
			child.Settle(br, bc, v)
			if dfs(child, br, bc+1) {
				return true
			}
		}
		return false
	}
	_ = dfs(*b, 0, 0)
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return false, st, err
	}
	return count == 1, st, nil
}
