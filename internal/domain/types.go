package domain

import (
	"fmt"
	"math/bits"
)

// allCandidates has bits 1..9 set; bit 0 is unused so that bit v means value v.
const allCandidates uint16 = 0b11_1111_1110

// Cell is one of the 81 board positions. Value 0 means the cell is still
// unsettled; Candidates is a bitmask of the values 1..9 still possible for it.
// A settled cell always has an empty candidate set.
type Cell struct {
	Value      uint8  `json:"value"`
	Candidates uint16 `json:"candidates,omitempty"`
	Given      bool   `json:"given,omitempty"`
}

// Settled reports whether the cell has a final value.
func (c Cell) Settled() bool { return c.Value != 0 }

// Valid reports whether the cell is settled or still has at least one
// candidate. An unsettled cell with no candidates is a contradiction.
func (c Cell) Valid() bool { return c.Value != 0 || c.Candidates != 0 }

// Has reports whether v is still a candidate for the cell.
func (c Cell) Has(v uint8) bool { return c.Candidates&(1<<v) != 0 }

// CandidateCount returns the number of remaining candidates.
func (c Cell) CandidateCount() int { return bits.OnesCount16(c.Candidates) }

// Sole returns the single remaining candidate, if exactly one is left.
func (c Cell) Sole() (uint8, bool) {
	if bits.OnesCount16(c.Candidates) != 1 {
		return 0, false
	}
	return uint8(bits.TrailingZeros16(c.Candidates)), true
}

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a plain value holding the full puzzle state. It is copied at every
// branch point of the search; workers never share a mutable Board, so no lock
// guards puzzle state.
type Board struct {
	Cells     [9][9]Cell
	Unsettled int8
}

// New returns an empty board with every value open for every cell.
func New() Board {
	var b Board
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			b.Cells[r][c].Candidates = allCandidates
		}
	}
	b.Unsettled = 81
	return b
}

// FromValues builds a board from a plain value grid, settling each non-zero
// entry as a given clue. ok is false when the clues conflict; the returned
// board then contains a cell with an empty candidate set, and the search
// reports the contradiction in the ordinary way rather than aborting.
func FromValues(values [9][9]uint8) (Board, bool) {
	b := New()
	ok := true
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			v := values[r][c]
			if v == 0 {
				continue
			}
			if !b.Settle(r, c, v) {
				ok = false
			}
			b.Cells[r][c].Given = true
		}
	}
	return b, ok
}

// Values flattens the board back to a value grid, 0 for unsettled cells.
func (b *Board) Values() [9][9]uint8 {
	var out [9][9]uint8
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			out[r][c] = b.Cells[r][c].Value
		}
	}
	return out
}

// Contradictory reports whether any cell was left unsettled with an empty
// candidate set, the encoding a failed Settle leaves behind. Such a cell has
// no value, so Values and Line omit it; callers working from the value grid
// must check here first.
func (b *Board) Contradictory() bool {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if !b.Cells[r][c].Valid() {
				return true
			}
		}
	}
	return false
}

// Line emits the 81-character row-major form, '.' for unsettled cells.
func (b *Board) Line() string {
	buf := make([]byte, 0, 81)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if v := b.Cells[r][c].Value; v != 0 {
				buf = append(buf, '0'+v)
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}

// Settle fixes the cell at (r, c) to v, empties its candidate set, and removes
// v from the candidates of its 20 peers (row, column, 3×3 sub-block; clearing
// an absent candidate is a no-op, so the overlaps are harmless). It returns
// whether the board is still valid afterward: false when some peer was left
// unsettled with no candidates, or when v had already been eliminated from the
// target cell itself. In the latter case the target's candidate set is emptied
// so the contradiction stays visible to the search.
//
// Out-of-range coordinates, settling an already settled cell, and settling on
// a complete board are programmer errors and panic.
func (b *Board) Settle(r, c int, v uint8) bool {
	if r < 0 || r > 8 || c < 0 || c > 8 {
		panic(fmt.Sprintf("domain: settle out of range (%d,%d)", r, c))
	}
	if v < 1 || v > 9 {
		panic(fmt.Sprintf("domain: settle value %d out of range", v))
	}
	if b.Cells[r][c].Settled() {
		panic(fmt.Sprintf("domain: cell (%d,%d) already settled", r, c))
	}
	if b.Unsettled == 0 {
		panic("domain: settle on a complete board")
	}

	cell := &b.Cells[r][c]
	if !cell.Has(v) {
		cell.Candidates = 0
		return false
	}
	cell.Value = v
	cell.Candidates = 0
	b.Unsettled--

	for j := 0; j < 9; j++ {
		if !b.eliminate(r, j, v) {
			return false
		}
	}
	for i := 0; i < 9; i++ {
		if !b.eliminate(i, c, v) {
			return false
		}
	}
	br, bc := blockOrigin(r), blockOrigin(c)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !b.eliminate(br+i, bc+j, v) {
				return false
			}
		}
	}
	return true
}

// eliminate drops v from the candidates at (r, c) and reports whether the
// cell is still valid.
func (b *Board) eliminate(r, c int, v uint8) bool {
	cell := &b.Cells[r][c]
	cell.Candidates &^= 1 << v
	return cell.Valid()
}

// blockOrigin maps a row or column coordinate to the first coordinate of its
// 3×3 sub-block (0,1,2 → 0; 3,4,5 → 3; 6,7,8 → 6).
func blockOrigin(i int) int { return (i / 3) * 3 }

// FirstUnsettled scans row-major from (r, c) and returns the coordinates of
// the first unsettled cell, or ok=false when every cell from there on is
// settled.
func (b *Board) FirstUnsettled(r, c int) (int, int, bool) {
	for ; r < 9; r, c = r+1, 0 {
		for ; c < 9; c++ {
			if !b.Cells[r][c].Settled() {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Puzzle is a generated Sudoku with metadata.
type Puzzle struct {
	ID         string     `json:"id,omitempty"`
	Seed       int64      `json:"seed,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Line       string     `json:"line"`
	Board      Board      `json:"-"`
	CreatedAt  int64      `json:"createdAt,omitempty"`
}
