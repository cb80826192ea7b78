package escape

import (
	"fmt"
	"math"

	"github.com/katalvlaran/spacegrid/grid"
)

// Result is the frozen outcome of Compute: the grid it was computed from,
// its DistanceMap and DirectionMap. It is safe for concurrent use.
type Result struct {
	grid       *grid.Grid
	distances  *DistanceMap
	directions *DirectionMap
	workers    int
}

func newResult(g *grid.Grid, width Width, store distanceStore, dirs []Direction, workers int) *Result {
	return &Result{
		grid:       g,
		distances:  &DistanceMap{rows: g.Rows(), cols: g.Cols(), width: width, store: store},
		directions: &DirectionMap{rows: g.Rows(), cols: g.Cols(), dirs: dirs},
		workers:    workers,
	}
}

// Grid returns the grid the result was computed from.
func (r *Result) Grid() *grid.Grid { return r.grid }

// Distances returns the per-cell hop counts.
func (r *Result) Distances() *DistanceMap { return r.distances }

// Directions returns the per-cell next steps.
func (r *Result) Directions() *DirectionMap { return r.directions }

// Reachable returns the number of cells with a route to a station.
func (r *Result) Reachable() int {
	n := 0
	for i, size := 0, r.distances.store.len(); i < size; i++ {
		if r.distances.store.at(i) >= 0 {
			n++
		}
	}
	return n
}

// SafeFactor returns the fraction of cells with a route to a station,
// in [0, 1], or NaN for an empty grid.
func (r *Result) SafeFactor() float64 {
	size := r.grid.Size()
	if size == 0 {
		return math.NaN()
	}
	return float64(r.Reachable()) / float64(size)
}

// Verify checks the maps against the grid:
//   - a cell is a Station ⇔ its direction is Arrived ⇔ its distance is 0;
//   - a cell's direction is None ⇔ its distance is Unreachable;
//   - Singularities are never settled;
//   - following a reachable cell's direction across Void cells leads to a
//     Node or Station exactly one hop closer.
//
// Returns ErrCorruptMaps wrapped with the first offending cell.
// Complexity: O(R×C).
func (r *Result) Verify() error {
	g, dist, dirs := r.grid, r.distances, r.directions
	if dist.rows != g.Rows() || dist.cols != g.Cols() || dirs.rows != g.Rows() || dirs.cols != g.Cols() {
		return fmt.Errorf("%w: map shape differs from %dx%d grid", ErrCorruptMaps, g.Rows(), g.Cols())
	}

	for i := 0; i < g.Size(); i++ {
		kind, d, dir := g.KindAt(i), dist.store.at(i), dirs.dirs[i]
		c := g.Coordinate(i)
		switch {
		case d < Unreachable:
			return fmt.Errorf("%w: negative distance %d at %v", ErrCorruptMaps, d, c)
		case (kind == grid.Station) != (dir == Arrived), (dir == Arrived) != (d == 0):
			return fmt.Errorf("%w: %v at %v has direction %v and distance %d", ErrCorruptMaps, kind, c, dir, d)
		case (dir == None) != (d == Unreachable):
			return fmt.Errorf("%w: direction %v with distance %d at %v", ErrCorruptMaps, dir, d, c)
		case kind == grid.Singularity && d != Unreachable:
			return fmt.Errorf("%w: singularity settled at %v", ErrCorruptMaps, c)
		case dir > Arrived:
			return fmt.Errorf("%w: unknown direction %d at %v", ErrCorruptMaps, dir, c)
		}
	}

	for _, d := range fanOut {
		if err := r.verifyHops(d); err != nil {
			return err
		}
	}
	return nil
}

// verifyHops sweeps every line against direction d, tracking the nearest
// non-Void cell ahead, and checks each cell pointing in d against it.
func (r *Result) verifyHops(d Direction) error {
	g := r.grid
	rows, cols := g.Rows(), g.Cols()
	dr, dc := d.Delta()

	// lines are walked from the far end so that "ahead" is already known
	outer, inner := rows, cols
	if dr != 0 {
		outer, inner = cols, rows
	}
	for a := 0; a < outer; a++ {
		ahead := -1
		for b := inner - 1; b >= 0; b-- {
			var c grid.Coord
			switch {
			case dc > 0:
				c = grid.Coord{Row: a, Col: b}
			case dc < 0:
				c = grid.Coord{Row: a, Col: inner - 1 - b}
			case dr > 0:
				c = grid.Coord{Row: b, Col: a}
			default:
				c = grid.Coord{Row: inner - 1 - b, Col: a}
			}
			i := g.Index(c)
			if r.directions.dirs[i] == d {
				if ahead < 0 || g.KindAt(ahead) == grid.Singularity {
					return fmt.Errorf("%w: %v points %v at no relay", ErrCorruptMaps, c, d)
				}
				if got, want := r.distances.store.at(ahead), r.distances.store.at(i)-1; got != want {
					return fmt.Errorf("%w: %v at distance %d points at %v at distance %d",
						ErrCorruptMaps, c, want+1, g.Coordinate(ahead), got)
				}
			}
			if g.KindAt(i) != grid.Void {
				ahead = i
			}
		}
	}
	return nil
}
