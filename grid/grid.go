package grid

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"go.uber.org/multierr"
	"golang.org/x/exp/constraints"
)

// maxReported caps the number of cell problems collected by From2D.
const maxReported = 16

// From2D builds a Grid from a rectangular 2D slice of integers.
// It copies the input, so later changes to values do not affect the Grid.
// Every ragged row and every cell outside 0..3 is reported (up to a cap),
// each wrapping ErrNonRectangular or ErrUnknownKind.
// Complexity: O(R×C) time and memory.
func From2D[T constraints.Integer](values [][]T) (*Grid, error) {
	rows := len(values)
	cols := 0
	if rows > 0 {
		cols = len(values[0])
	}

	var err error
	reported := 0
	report := func(e error) {
		if reported < maxReported {
			err = multierr.Append(err, e)
		}
		reported++
	}

	for r, row := range values {
		if len(row) != cols {
			report(fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, r, len(row), cols))
		}
	}
	if err != nil {
		return nil, err
	}

	cells := make([]CellKind, rows*cols)
	for r, row := range values {
		for c, v := range row {
			if v < 0 || uint64(v) >= numKinds {
				report(fmt.Errorf("%w: %d at %v", ErrUnknownKind, v, Coord{r, c}))
				continue
			}
			cells[r*cols+c] = CellKind(v)
		}
	}
	if err != nil {
		return nil, err
	}

	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// FromAny builds a Grid from a value whose static type is unknown, such as
// a decoded payload. It accepts *Grid, Grid and any [][]T where T is a Go
// integer type (named integer types included). Anything else fails with
// ErrTypeMismatch before any cell is inspected.
func FromAny(v any) (*Grid, error) {
	switch x := v.(type) {
	case *Grid:
		if x == nil {
			return nil, fmt.Errorf("%w: nil *Grid", ErrTypeMismatch)
		}
		return x, nil
	case Grid:
		return &x, nil
	case [][]CellKind:
		return From2D(x)
	case [][]int:
		return From2D(x)
	case [][]int8:
		return From2D(x)
	case [][]int16:
		return From2D(x)
	case [][]int32:
		return From2D(x)
	case [][]int64:
		return From2D(x)
	case [][]uint:
		return From2D(x)
	case [][]uint16:
		return From2D(x)
	case [][]uint32:
		return From2D(x)
	case [][]uint64:
		return From2D(x)
	}
	return fromReflect(v)
}

// fromReflect handles [][]T for integer kinds not covered by FromAny's
// type switch, e.g. [][]byte or slices of named integer types.
func fromReflect(v any) (*Grid, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil", ErrTypeMismatch)
	}
	rv := reflect.ValueOf(v)
	t := rv.Type()
	if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: got %s", ErrTypeMismatch, t)
	}
	var signed bool
	switch t.Elem().Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		signed = true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
	default:
		return nil, fmt.Errorf("%w: got %s", ErrTypeMismatch, t)
	}

	values := make([][]int64, rv.Len())
	for r := range values {
		row := rv.Index(r)
		values[r] = make([]int64, row.Len())
		for c := range values[r] {
			cell := row.Index(c)
			if signed {
				values[r][c] = cell.Int()
				continue
			}
			u := cell.Uint()
			if u > math.MaxInt64 {
				u = math.MaxInt64
			}
			values[r][c] = int64(u)
		}
	}
	return From2D(values)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns the total number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether c lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the kind at c. It panics if c is out of bounds.
func (g *Grid) At(c Coord) CellKind {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("grid: %v out of bounds %dx%d", c, g.rows, g.cols))
	}
	return g.cells[g.Index(c)]
}

// Index maps c to its row-major index: Row*Cols + Col.
// Complexity: O(1).
func (g *Grid) Index(c Coord) int {
	return c.Row*g.cols + c.Col
}

// Coordinate converts a row-major index back to a Coord.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Coord {
	return Coord{Row: idx / g.cols, Col: idx % g.cols}
}

// KindAt returns the kind stored at row-major index idx.
func (g *Grid) KindAt(idx int) CellKind {
	return g.cells[idx]
}

// Count returns the number of cells of kind k.
func (g *Grid) Count(k CellKind) int {
	n := 0
	for _, v := range g.cells {
		if v == k {
			n++
		}
	}
	return n
}

// Stations returns the coordinates of all Station cells in row-major order.
func (g *Grid) Stations() []Coord {
	var out []Coord
	for i, v := range g.cells {
		if v == Station {
			out = append(out, g.Coordinate(i))
		}
	}
	return out
}

// Values returns a fresh [][]int copy of the grid.
func (g *Grid) Values() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = make([]int, g.cols)
		for c := range out[r] {
			out[r][c] = int(g.cells[r*g.cols+c])
		}
	}
	return out
}

// Transpose returns a new grid with rows and columns swapped.
func (g *Grid) Transpose() *Grid {
	t := &Grid{rows: g.cols, cols: g.rows, cells: make([]CellKind, len(g.cells))}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			t.cells[c*t.cols+r] = g.cells[r*g.cols+c]
		}
	}
	return t
}

// Equal reports whether g and o have the same shape and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i, v := range g.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the grid as a [][]int array.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Values())
}

// UnmarshalJSON decodes a [][]int array, applying the From2D checks.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var values [][]int
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	ng, err := From2D(values)
	if err != nil {
		return err
	}
	*g = *ng
	return nil
}
