package escape

import (
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/katalvlaran/spacegrid/grid"
)

// Unreachable is the distance recorded for cells with no route to a station.
const Unreachable = -1

// distanceStore is the width-erased view of a distance slice.
type distanceStore interface {
	at(i int) int64
	len() int
}

// cells is a row-major distance slice of one concrete width.
type cells[T constraints.Signed] []T

func (c cells[T]) at(i int) int64 { return int64(c[i]) }
func (c cells[T]) len() int       { return len(c) }

// DistanceMap holds, per cell, the hop count to the nearest station or
// Unreachable. Values are stored in the narrowest width that can count the
// grid's cells. It is immutable.
type DistanceMap struct {
	rows, cols int
	width      Width
	store      distanceStore
}

// Rows returns the number of rows.
func (m *DistanceMap) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *DistanceMap) Cols() int { return m.cols }

// Width returns the bit width used to store distances.
func (m *DistanceMap) Width() Width { return m.width }

// At returns the distance at c. It panics if c is out of bounds.
func (m *DistanceMap) At(c grid.Coord) int64 {
	return m.store.at(m.index(c))
}

// Values returns a fresh [][]int64 copy of the map.
func (m *DistanceMap) Values() [][]int64 {
	out := make([][]int64, m.rows)
	for r := range out {
		out[r] = make([]int64, m.cols)
		for c := range out[r] {
			out[r][c] = m.store.at(r*m.cols + c)
		}
	}
	return out
}

// Max returns the largest recorded distance, or Unreachable when no cell is reachable.
func (m *DistanceMap) Max() int64 {
	best := int64(Unreachable)
	for i, n := 0, m.store.len(); i < n; i++ {
		if d := m.store.at(i); d > best {
			best = d
		}
	}
	return best
}

func (m *DistanceMap) index(c grid.Coord) int {
	if c.Row < 0 || c.Row >= m.rows || c.Col < 0 || c.Col >= m.cols {
		panic("escape: distance lookup out of bounds: " + c.String())
	}
	return c.Row*m.cols + c.Col
}

// DirectionMap holds, per cell, the next step towards the nearest station.
// It is immutable.
type DirectionMap struct {
	rows, cols int
	dirs       []Direction
}

// Rows returns the number of rows.
func (m *DirectionMap) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *DirectionMap) Cols() int { return m.cols }

// At returns the direction at c. It panics if c is out of bounds.
func (m *DirectionMap) At(c grid.Coord) Direction {
	if c.Row < 0 || c.Row >= m.rows || c.Col < 0 || c.Col >= m.cols {
		panic("escape: direction lookup out of bounds: " + c.String())
	}
	return m.dirs[c.Row*m.cols+c.Col]
}

// Values returns a fresh [][]Direction copy of the map.
func (m *DirectionMap) Values() [][]Direction {
	out := make([][]Direction, m.rows)
	for r := range out {
		out[r] = append([]Direction(nil), m.dirs[r*m.cols:(r+1)*m.cols]...)
	}
	return out
}

// Lines renders each row as a string of direction symbols.
func (m *DirectionMap) Lines() []string {
	out := make([]string, m.rows)
	buf := make([]byte, m.cols)
	for r := range out {
		for c := range buf {
			buf[c] = m.dirs[r*m.cols+c].Symbol()
		}
		out[r] = string(buf)
	}
	return out
}

// String renders the map as newline-terminated rows of direction symbols.
func (m *DirectionMap) String() string {
	var sb strings.Builder
	for _, line := range m.Lines() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
