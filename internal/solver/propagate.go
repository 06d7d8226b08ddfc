package solver

import "svw.info/parsudoku/internal/domain"

// PropagationResult is the outcome of running naked-single elimination to
// saturation on a board.
type PropagationResult int

const (
	// Exhausted: no more forced moves; unsettled cells all keep >= 2 candidates.
	Exhausted PropagationResult = iota
	// Complete: every cell is settled.
	Complete
	// Contradiction: some unsettled cell has no candidates left.
	Contradiction
)

// Propagate settles every naked single on the board, repeating passes until a
// pass makes no progress. It aborts with Contradiction as soon as a settle
// reports the board invalid or an unsettled cell with an empty candidate set
// is seen. Converges in at most 81 passes since each productive pass settles
// at least one cell.
func Propagate(b *domain.Board) PropagationResult {
	for {
		progressed := false
		for r := 0; r < 9; r++ {
			for c := 0; c < 9; c++ {
				cell := b.Cells[r][c]
				if cell.Settled() {
					continue
				}
				switch cell.CandidateCount() {
				case 0:
					return Contradiction
				case 1:
					v, _ := cell.Sole()
					if !b.Settle(r, c, v) {
						return Contradiction
					}
					progressed = true
				}
			}
		}
		if b.Unsettled == 0 {
			return Complete
		}
		if !progressed {
			return Exhausted
		}
	}
}
