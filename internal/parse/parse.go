// Package parse reads the 81-character row-major puzzle form: bytes '1'..'9'
// are given clues, any other byte is an unsettled cell.
package parse

import (
	"fmt"
	"strings"

	"svw.info/parsudoku/internal/domain"
)

// Line parses one puzzle line into a board. A trailing line terminator is
// tolerated; any other length is an error. Conflicting clues parse
// successfully into a board carrying a contradiction, which the search
// reports as an unsolvable puzzle rather than a crash.
func Line(s string) (*domain.Board, error) {
	s = strings.TrimRight(s, "\r\n")
	if len(s) != 81 {
		return nil, fmt.Errorf("parse: puzzle line must be 81 characters, got %d", len(s))
	}
	var values [9][9]uint8
	for i := 0; i < 81; i++ {
		if ch := s[i]; ch >= '1' && ch <= '9' {
			values[i/9][i%9] = ch - '0'
		}
	}
	b, _ := domain.FromValues(values)
	return &b, nil
}
