package escape

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/katalvlaran/spacegrid/grid"
)

// Snapshot is a plain, serialisable copy of a Result.
// Directions holds one string of direction symbols per row.
type Snapshot struct {
	Grid       [][]int   `json:"grid"`
	Distances  [][]int64 `json:"distances"`
	Directions []string  `json:"directions"`
}

// Snapshot copies r into its serialisable form.
func (r *Result) Snapshot() Snapshot {
	return Snapshot{
		Grid:       r.grid.Values(),
		Distances:  r.distances.Values(),
		Directions: r.directions.Lines(),
	}
}

// Restore rebuilds a Result from a Snapshot and runs Verify on it, so a
// tampered snapshot fails with ErrCorruptMaps instead of misrouting.
// Options other than WithMaxWidth and WithRouteWorkers are ignored.
func Restore(s Snapshot, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	g, err := grid.From2D(s.Grid)
	if err != nil {
		return nil, err
	}
	rows, cols := g.Rows(), g.Cols()
	if len(s.Distances) != rows || len(s.Directions) != rows {
		return nil, fmt.Errorf("%w: snapshot has %d distance and %d direction rows, want %d",
			ErrCorruptMaps, len(s.Distances), len(s.Directions), rows)
	}

	dirs := make([]Direction, 0, g.Size())
	for r, line := range s.Directions {
		if len(line) != cols || len(s.Distances[r]) != cols {
			return nil, fmt.Errorf("%w: snapshot row %d is not %d cells wide", ErrCorruptMaps, r, cols)
		}
		for i := 0; i < len(line); i++ {
			d, err := ParseDirection(line[i])
			if err != nil {
				return nil, err
			}
			dirs = append(dirs, d)
		}
	}

	width, err := SmallestWidth(g.Size(), o.MaxWidth)
	if err != nil {
		return nil, err
	}
	var store distanceStore
	switch width {
	case Width8:
		store, err = fill[int8](s.Distances, width)
	case Width16:
		store, err = fill[int16](s.Distances, width)
	case Width32:
		store, err = fill[int32](s.Distances, width)
	default:
		store, err = fill[int64](s.Distances, width)
	}
	if err != nil {
		return nil, err
	}

	res := newResult(g, width, store, dirs, o.RouteWorkers)
	if err := res.Verify(); err != nil {
		return nil, err
	}
	return res, nil
}

// fill flattens distances into a slice of width T, rejecting values that
// do not fit.
func fill[T constraints.Signed](distances [][]int64, w Width) (distanceStore, error) {
	var out cells[T]
	for r, row := range distances {
		for c, d := range row {
			if d < Unreachable || d > w.Max() {
				return nil, fmt.Errorf("%w: distance %d at %v out of %d-bit range",
					ErrCorruptMaps, d, grid.Coord{Row: r, Col: c}, w)
			}
			out = append(out, T(d))
		}
	}
	return out, nil
}
