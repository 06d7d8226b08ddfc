// Package render prints boards with sub-block separators, coloring given
// clues, solved values, and unsettled placeholders differently.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"svw.info/parsudoku/internal/domain"
)

var (
	given  = color.New(color.FgCyan)
	solved = color.New(color.FgGreen)
	blank  = color.New(color.FgRed, color.Bold)
)

const rowSeparator = "------+-------+------"

// Renderer writes boards to a single destination.
type Renderer struct {
	out io.Writer
}

func New(out io.Writer) *Renderer { return &Renderer{out: out} }

// Board prints the unsettled-cell count followed by the 9×9 grid, '_' for
// cells that never settled (only possible on a failed or partial run).
func (p *Renderer) Board(b *domain.Board) error {
	if _, err := fmt.Fprintf(p.out, "unsolved_squares: %d\n", b.Unsettled); err != nil {
		return err
	}
	for r := 0; r < 9; r++ {
		if r == 3 || r == 6 {
			if _, err := fmt.Fprintln(p.out, rowSeparator); err != nil {
				return err
			}
		}
		parts := make([]string, 0, 11)
		for c := 0; c < 9; c++ {
			if c == 3 || c == 6 {
				parts = append(parts, "|")
			}
			parts = append(parts, cellGlyph(b.Cells[r][c]))
		}
		if _, err := fmt.Fprintln(p.out, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}

// Puzzle prints generation metadata, the 81-character line, and the grid.
func (p *Renderer) Puzzle(puz *domain.Puzzle) error {
	fmt.Fprintf(p.out, "id: %s\n", puz.ID)
	fmt.Fprintf(p.out, "seed: %d\n", puz.Seed)
	fmt.Fprintf(p.out, "difficulty: %s\n", puz.Difficulty)
	fmt.Fprintf(p.out, "line: %s\n", puz.Line)
	return p.Board(&puz.Board)
}

// Conflicts lists duplicate-value cells found by the validator.
func (p *Renderer) Conflicts(conflicts []domain.CellCoord) error {
	for _, cc := range conflicts {
		if _, err := blank.Fprintf(p.out, "conflict at row %d, col %d\n", cc.Row, cc.Col); err != nil {
			return err
		}
	}
	return nil
}

func cellGlyph(c domain.Cell) string {
	switch {
	case !c.Settled():
		return blank.Sprint("_")
	case c.Given:
		return given.Sprint(c.Value)
	default:
		return solved.Sprint(c.Value)
	}
}
