package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/parsudoku/internal/domain"
	"svw.info/parsudoku/internal/parse"
)

const solvedLine = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"

func init() {
	color.NoColor = true
}

func TestBoardSolved(t *testing.T) {
	b, err := parse.Line(solvedLine)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(&buf).Board(b))

	want := strings.Join([]string{
		"unsolved_squares: 0",
		"5 3 4 | 6 7 8 | 9 1 2",
		"6 7 2 | 1 9 5 | 3 4 8",
		"1 9 8 | 3 4 2 | 5 6 7",
		"------+-------+------",
		"8 5 9 | 7 6 1 | 4 2 3",
		"4 2 6 | 8 5 3 | 7 9 1",
		"7 1 3 | 9 2 4 | 8 5 6",
		"------+-------+------",
		"9 6 1 | 5 3 7 | 2 8 4",
		"2 8 7 | 4 1 9 | 6 3 5",
		"3 4 5 | 2 8 6 | 1 7 9",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestBoardPlaceholders(t *testing.T) {
	b := domain.New()
	require.True(t, b.Settle(0, 0, 5))

	var buf bytes.Buffer
	require.NoError(t, New(&buf).Board(&b))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "unsolved_squares: 80\n"))
	assert.Contains(t, out, "5 _ _ | _ _ _ | _ _ _")
}

func TestPuzzle(t *testing.T) {
	b, err := parse.Line(solvedLine)
	require.NoError(t, err)
	p := &domain.Puzzle{
		ID:         "test-id",
		Seed:       42,
		Difficulty: domain.Hard,
		Line:       solvedLine,
		Board:      *b,
	}

	var buf bytes.Buffer
	require.NoError(t, New(&buf).Puzzle(p))

	out := buf.String()
	assert.Contains(t, out, "id: test-id\n")
	assert.Contains(t, out, "seed: 42\n")
	assert.Contains(t, out, "difficulty: hard\n")
	assert.Contains(t, out, "line: "+solvedLine+"\n")
	assert.Contains(t, out, "unsolved_squares: 0\n")
}

func TestConflicts(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf).Conflicts([]domain.CellCoord{{Row: 2, Col: 8}})
	require.NoError(t, err)
	assert.Equal(t, "conflict at row 2, col 8\n", buf.String())
}
