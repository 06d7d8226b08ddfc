package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/parsudoku/internal/domain"
	"svw.info/parsudoku/internal/ports"
)

// DLXSolver implements Algorithm X / Dancing Links for Sudoku.
// Exact-cover mapping: 324 columns (constraints), 729 rows (r,c,v candidates).
// Columns: 0..80    -> cell (r,c) is filled
//          81..161  -> row r contains value v
//          162..242 -> col c contains value v
//          243..323 -> box b contains value v, b = (r/3)*3 + (c/3)
type DLXSolver struct{}

func NewDLXSolver() *DLXSolver { return &DLXSolver{} }

const (
	nSize     = 9
	nCells    = nSize * nSize // 81
	nCols     = 4 * nCells    // 324
	nRows     = nCells * nSize // 729 (r,c,v)
	colCell   = 0
	colRowNum = 81
	colColNum = 162
	colBoxNum = 243
)

// dlxMatrix is an index-based dancing-links structure: node 0 is the head,
// nodes 1..nCols are the column headers, the rest are the four constraint
// nodes of each (r,c,v) row. Links are indices, not pointers, which keeps the
// whole matrix in a handful of contiguous slices.
type dlxMatrix struct {
	left, right []int
	up, down    []int
	colOf       []int // node -> column header
	rowOf       []int // node -> 0..728 (r,c,v) row id
	colSize     []int // header -> remaining rows
	covered     []bool
	rowHead     [nRows]int
	sol         [nCells]int // chosen nodes, one per solved cell
	solLen      int
	nodes       int
}

func newDLXMatrix() *dlxMatrix {
	total := 1 + nCols + nRows*4
	m := &dlxMatrix{
		left:    make([]int, total),
		right:   make([]int, total),
		up:      make([]int, total),
		down:    make([]int, total),
		colOf:   make([]int, total),
		rowOf:   make([]int, total),
		colSize: make([]int, nCols+1),
		covered: make([]bool, nCols+1),
	}
	// head and headers form the horizontal ring
	for i := 0; i <= nCols; i++ {
		m.left[i] = (i + nCols) % (nCols + 1)
		m.right[i] = (i + 1) % (nCols + 1)
		m.up[i] = i
		m.down[i] = i
	}
	// append the four nodes of every (r,c,v) row
	next := nCols + 1
	for r := 0; r < nSize; r++ {
		for c := 0; c < nSize; c++ {
			for v := 1; v <= nSize; v++ {
				row := rowIndex(r, c, v)
				first := next
				for _, colID := range rowColumns(r, c, v) {
					h := colID + 1
					id := next
					next++
					// vertical insert at the bottom of the column
					m.up[id] = m.up[h]
					m.down[id] = h
					m.down[m.up[h]] = id
					m.up[h] = id
					m.colSize[h]++
					m.colOf[id] = h
					m.rowOf[id] = row
					// horizontal ring of the row's four nodes
					if id == first {
						m.left[id], m.right[id] = id, id
					} else {
						m.left[id] = m.left[first]
						m.right[id] = first
						m.right[m.left[first]] = id
						m.left[first] = id
					}
				}
				m.rowHead[row] = first
			}
		}
	}
	return m
}

func rowIndex(r, c, v int) int {
	return (r*nSize+c)*nSize + (v - 1) // 0..728
}

func rowColumns(r, c, v int) [4]int {
	cell := colCell + r*nSize + c
	rowN := colRowNum + r*nSize + (v - 1)
	colN := colColNum + c*nSize + (v - 1)
	box := (r/3)*3 + (c / 3)
	boxN := colBoxNum + box*nSize + (v - 1)
	return [4]int{cell, rowN, colN, boxN}
}

// cover unlinks a column header from the ring and every row using the column
// from all other columns.
func (m *dlxMatrix) cover(h int) {
	m.covered[h] = true
	m.right[m.left[h]] = m.right[h]
	m.left[m.right[h]] = m.left[h]
	for i := m.down[h]; i != h; i = m.down[i] {
		for j := m.right[i]; j != i; j = m.right[j] {
			m.down[m.up[j]] = m.down[j]
			m.up[m.down[j]] = m.up[j]
			m.colSize[m.colOf[j]]--
		}
	}
}

func (m *dlxMatrix) uncover(h int) {
	for i := m.up[h]; i != h; i = m.up[i] {
		for j := m.left[i]; j != i; j = m.left[j] {
			m.colSize[m.colOf[j]]++
			m.down[m.up[j]] = j
			m.up[m.down[j]] = j
		}
	}
	m.right[m.left[h]] = h
	m.left[m.right[h]] = h
	m.covered[h] = false
}

// chooseColumn returns the uncovered column with the fewest remaining rows.
func (m *dlxMatrix) chooseColumn() int {
	best, bestSize := 0, nRows+1
	for h := m.right[0]; h != 0; h = m.right[h] {
		if m.colSize[h] < bestSize {
			best, bestSize = h, m.colSize[h]
			if bestSize == 0 {
				break
			}
		}
	}
	return best
}

func (m *dlxMatrix) search(ctx context.Context, k, wantCount int, found *int) bool {
	select {
	case <-ctx.Done():
		return true // stop search
	default:
	}
	if m.right[0] == 0 {
		// every constraint satisfied
		m.solLen = k
		(*found)++
		return *found >= wantCount
	}

	h := m.chooseColumn()
	if h == 0 || m.colSize[h] == 0 {
		return false
	}
	m.cover(h)
	for i := m.down[h]; i != h; i = m.down[i] {
		m.nodes++
		m.sol[k] = i
		for j := m.right[i]; j != i; j = m.right[j] {
			m.cover(m.colOf[j])
		}
		if m.search(ctx, k+1, wantCount, found) {
			for j := m.left[i]; j != i; j = m.left[j] {
				m.uncover(m.colOf[j])
			}
			m.uncover(h)
			return true
		}
		for j := m.left[i]; j != i; j = m.left[j] {
			m.uncover(m.colOf[j])
		}
	}
	m.uncover(h)
	return false
}

// applyGiven selects the (r,c,v) row at top level by covering its columns.
// A column that is already covered means the givens conflict.
func (m *dlxMatrix) applyGiven(r, c, v int) error {
	head := m.rowHead[rowIndex(r, c, v)]
	for j := head; ; j = m.right[j] {
		h := m.colOf[j]
		if m.covered[h] {
			return errors.New("conflicting givens")
		}
		m.cover(h)
		if m.right[j] == head {
			break
		}
	}
	return nil
}

func (m *dlxMatrix) applyBoard(b *domain.Board) error {
	values := b.Values()
	for r := 0; r < nSize; r++ {
		for c := 0; c < nSize; c++ {
			if v := int(values[r][c]); v > 0 {
				if err := m.applyGiven(r, c, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *DLXSolver) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	start := time.Now()
	// A contradictory board has a cell with no value and no candidates; that
	// cell is absent from the value grid, so it must be rejected before the
	// matrix is built from it.
	if b.Contradictory() {
		return nil, ports.Stats{Duration: time.Since(start)}, ErrUnsolvable
	}
	m := newDLXMatrix()
	if err := m.applyBoard(b); err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, ErrUnsolvable
	}
	found := 0
	_ = m.search(ctx, 0, 1, &found)
	st := ports.Stats{Nodes: m.nodes, Duration: time.Since(start)}
	if found < 1 {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		return nil, st, ErrUnsolvable
	}
	// reconstruct the solved grid: the givens plus the chosen rows
	values := b.Values()
	for i := 0; i < m.solLen; i++ {
		r, c, v := decodeRow(m.rowOf[m.sol[i]])
		values[r][c] = uint8(v)
	}
	out, _ := domain.FromValues(values)
	for r := 0; r < nSize; r++ {
		for c := 0; c < nSize; c++ {
			out.Cells[r][c].Given = b.Cells[r][c].Given
		}
	}
	return &out, st, nil
}

func (s *DLXSolver) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	start := time.Now()
	if b.Contradictory() {
		return false, ports.Stats{Duration: time.Since(start)}, nil
	}
	m := newDLXMatrix()
	if err := m.applyBoard(b); err != nil {
		return false, ports.Stats{Duration: time.Since(start)}, nil
	}
	found := 0
	_ = m.search(ctx, 0, 2, &found) // stop after finding 2 solutions
	st := ports.Stats{Nodes: m.nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return false, st, err
	}
	return found == 1, st, nil
}

func decodeRow(row int) (r, c, v int) {
	cell := row / nSize       // 0..80
	v = (row % nSize) + 1     // 1..9
	r = cell / nSize          // 0..8
	c = cell % nSize          // 0..8
	return
}
