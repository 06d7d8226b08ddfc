package solver

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/parsudoku/internal/domain"
	"svw.info/parsudoku/internal/validator"
)

// The classic example puzzle and its unique solution.
const (
	samplePuzzle   = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
	sampleSolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

var (
	// (0,8) can be neither 1..8 (row) nor 9 (column): no candidates left.
	unsolvablePuzzle = "12345678." + "........9" + strings.Repeat(".", 63)

	// two 5s in the first row
	conflictPuzzle = "5...5" + strings.Repeat(".", 76)
)

func mustParse(t *testing.T, line string) *domain.Board {
	t.Helper()
	require.Len(t, line, 81)
	var values [9][9]uint8
	for i := 0; i < 81; i++ {
		if ch := line[i]; ch >= '1' && ch <= '9' {
			values[i/9][i%9] = ch - '0'
		}
	}
	b, _ := domain.FromValues(values)
	return &b
}

func TestNewParallelSolverRejectsBadBudget(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := NewParallelSolver(n)
		assert.Error(t, err, "max workers %d", n)
	}
}

func TestSolveUniquePuzzleSequential(t *testing.T) {
	s, err := NewParallelSolver(1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, st, err := s.Solve(ctx, mustParse(t, samplePuzzle))
	require.NoError(t, err)
	assert.Equal(t, sampleSolution, out.Line())
	assert.EqualValues(t, 0, out.Unsettled)
	assert.Equal(t, 0, st.Workers, "max_workers=1 must never spawn")
	assert.Greater(t, st.Nodes, 0)

	ok, conf, err := validator.New().Validate(ctx, out)
	require.NoError(t, err)
	assert.True(t, ok, "conflicts: %v", conf)
}

func TestSolveEquivalentAcrossWorkerBudgets(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 16} {
		s, err := NewParallelSolver(workers)
		require.NoError(t, err)

		out, _, err := s.Solve(context.Background(), mustParse(t, samplePuzzle))
		require.NoError(t, err, "workers=%d", workers)
		assert.Equal(t, sampleSolution, out.Line(), "workers=%d", workers)
	}
}

func TestSolveCompleteBoardSpawnsNothing(t *testing.T) {
	s, err := NewParallelSolver(8)
	require.NoError(t, err)

	out, st, err := s.Solve(context.Background(), mustParse(t, sampleSolution))
	require.NoError(t, err)
	assert.Equal(t, sampleSolution, out.Line())
	assert.Equal(t, 0, st.Workers, "a complete board needs no branching")
	assert.Equal(t, 1, st.Nodes)
}

func TestSolveUnsolvable(t *testing.T) {
	for _, workers := range []int{1, 4} {
		s, err := NewParallelSolver(workers)
		require.NoError(t, err)

		out, _, err := s.Solve(context.Background(), mustParse(t, unsolvablePuzzle))
		assert.ErrorIs(t, err, ErrUnsolvable, "workers=%d", workers)
		assert.Nil(t, out)
	}
}

func TestSolveConflictingGivens(t *testing.T) {
	s, err := NewParallelSolver(1)
	require.NoError(t, err)

	out, _, err := s.Solve(context.Background(), mustParse(t, conflictPuzzle))
	assert.ErrorIs(t, err, ErrUnsolvable)
	assert.Nil(t, out)
}

func TestSolveCanceledContext(t *testing.T) {
	s, err := NewParallelSolver(2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, _, err := s.Solve(ctx, mustParse(t, samplePuzzle))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}

func TestSolveEmptyBoardFindsSomeSolution(t *testing.T) {
	s, err := NewParallelSolver(4)
	require.NoError(t, err)

	b := domain.New()
	out, _, err := s.Solve(context.Background(), &b)
	require.NoError(t, err)
	assert.EqualValues(t, 0, out.Unsettled)

	ok, conf, err := validator.New().Validate(context.Background(), out)
	require.NoError(t, err)
	assert.True(t, ok, "conflicts: %v", conf)
}

func TestUnique(t *testing.T) {
	s, err := NewParallelSolver(1)
	require.NoError(t, err)
	ctx := context.Background()

	unique, _, err := s.Unique(ctx, mustParse(t, samplePuzzle))
	require.NoError(t, err)
	assert.True(t, unique)

	// an empty board has many solutions
	b := domain.New()
	unique, _, err = s.Unique(ctx, &b)
	require.NoError(t, err)
	assert.False(t, unique)

	unique, _, err = s.Unique(ctx, mustParse(t, unsolvablePuzzle))
	require.NoError(t, err)
	assert.False(t, unique, "zero solutions is not unique")
}

func TestUniqueCanceledContext(t *testing.T) {
	s, err := NewParallelSolver(1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = s.Unique(ctx, mustParse(t, samplePuzzle))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBudgetReserveRelease(t *testing.T) {
	b := newBudget(4)
	assert.EqualValues(t, 3, b.reserve(3), "3 of 4 slots free beyond the initiating worker")
	assert.EqualValues(t, 4, b.inUse.Load())

	assert.EqualValues(t, 0, b.reserve(2), "budget exhausted degrades to sequential")
	assert.EqualValues(t, 4, b.inUse.Load(), "over-reservation must be released")

	b.release()
	b.release()
	assert.EqualValues(t, 2, b.reserve(10), "partial fit is capped at the free slots")
	assert.EqualValues(t, 4, b.inUse.Load())
}

func TestBudgetSingleWorkerNeverReserves(t *testing.T) {
	b := newBudget(1)
	for _, k := range []int64{1, 2, 9} {
		assert.EqualValues(t, 0, b.reserve(k))
		assert.EqualValues(t, 1, b.inUse.Load())
	}
}
