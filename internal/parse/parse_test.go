package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"

func TestLineParsesClues(t *testing.T) {
	b, err := Line(sample)
	require.NoError(t, err)

	assert.EqualValues(t, 5, b.Cells[0][0].Value)
	assert.True(t, b.Cells[0][0].Given)
	assert.EqualValues(t, 3, b.Cells[0][1].Value)
	assert.False(t, b.Cells[0][2].Settled())
	assert.EqualValues(t, 9, b.Cells[8][8].Value)

	// clue eliminations already applied
	assert.False(t, b.Cells[0][5].Has(5))
}

func TestLineTrailingNewline(t *testing.T) {
	for _, suffix := range []string{"\n", "\r\n"} {
		b, err := Line(sample + suffix)
		require.NoError(t, err)
		assert.Equal(t, sample, b.Line())
	}
}

func TestLineAnyNonDigitIsBlank(t *testing.T) {
	line := "0 x_" + strings.Repeat(".", 77)
	b, err := Line(line)
	require.NoError(t, err)
	assert.EqualValues(t, 81, b.Unsettled)
}

func TestLineLength(t *testing.T) {
	_, err := Line(sample[:80])
	assert.Error(t, err)
	_, err = Line(sample + ".")
	assert.Error(t, err)
	_, err = Line("")
	assert.Error(t, err)
}

func TestLineConflictingCluesStillParse(t *testing.T) {
	line := "55" + strings.Repeat(".", 79)
	b, err := Line(line)
	require.NoError(t, err, "conflicting clues are a search failure, not a parse error")
	assert.False(t, b.Cells[0][1].Valid())
}

func TestLineRoundTrip(t *testing.T) {
	b, err := Line(sample)
	require.NoError(t, err)
	assert.Equal(t, sample, b.Line())
}
