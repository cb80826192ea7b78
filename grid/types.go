package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid construction.
var (
	// ErrTypeMismatch indicates the input does not behave as a 2D integer array.
	ErrTypeMismatch = errors.New("grid: input is not a 2D integer array")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrUnknownKind indicates a cell value outside the known cell kinds.
	ErrUnknownKind = errors.New("grid: unknown cell kind")
	// ErrSyntax indicates malformed text input.
	ErrSyntax = errors.New("grid: syntax error")
)

// CellKind is the content of a single grid cell.
type CellKind uint8

const (
	// Void is freely traversable and has no effect.
	Void CellKind = iota
	// Node relays a beam at the cost of one extra hop.
	Node
	// Station is a destination.
	Station
	// Singularity is opaque: it cannot be entered or seen through.
	Singularity
)

// numKinds bounds the valid CellKind values.
const numKinds = 4

// Valid reports whether k is one of the known cell kinds.
func (k CellKind) Valid() bool { return k < numKinds }

// String returns the lower-case kind name.
func (k CellKind) String() string {
	switch k {
	case Void:
		return "void"
	case Node:
		return "node"
	case Station:
		return "station"
	case Singularity:
		return "singularity"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Coord addresses a cell by row and column.
type Coord struct {
	Row, Col int
}

// Add returns c shifted by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// String formats c as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is an immutable rectangular array of cell kinds.
// Cells are stored row-major; cells[r*Cols+c] holds the kind at (r, c).
type Grid struct {
	rows, cols int
	cells      []CellKind
}
