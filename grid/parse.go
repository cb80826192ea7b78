package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads the text form of a grid: one row per line, one digit per cell.
// Blank lines and lines starting with '#' are skipped; spaces, tabs and
// commas between cells are ignored.
func Parse(r io.Reader) (*Grid, error) {
	var rows [][]CellKind
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		row := make([]CellKind, 0, len(text))
		for col, ch := range text {
			switch {
			case ch == ' ' || ch == '\t' || ch == ',':
				continue
			case ch >= '0' && ch < '0'+numKinds:
				row = append(row, CellKind(ch-'0'))
			case ch >= '0' && ch <= '9':
				return nil, fmt.Errorf("%w: %q at line %d, column %d", ErrUnknownKind, ch, line, col+1)
			default:
				return nil, fmt.Errorf("%w: unexpected %q at line %d, column %d", ErrSyntax, ch, line, col+1)
			}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: read: %w", err)
	}
	return From2D(rows)
}

// ParseString is Parse over a string.
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}

// String renders the grid in the text form accepted by Parse,
// one line per row, each terminated by a newline.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			sb.WriteByte('0' + byte(g.cells[r*g.cols+c]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
