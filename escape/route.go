package escape

import (
	"context"
	"fmt"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spacegrid/grid"
)

// Route returns the waypoints of a shortest route from start to its nearest
// station: every Node and Station met on the way, excluding start and ending
// with the station. A route from a station is empty.
//
// Validation happens before Route returns: ErrOutOfBounds if start is off the
// grid, ErrUnreachable if no station can be reached from it. The sequence
// itself is lazy and may be ranged over any number of times, or abandoned
// early, without side effects.
//
// Between two decision points every Void cell shares the direction of the
// cell the walk came from, so the walk only reads directions at Nodes and
// Stations.
func (r *Result) Route(start grid.Coord) (iter.Seq[grid.Coord], error) {
	if !r.grid.InBounds(start) {
		return nil, fmt.Errorf("%w: %v not in %dx%d grid", ErrOutOfBounds, start, r.grid.Rows(), r.grid.Cols())
	}
	first := r.directions.At(start)
	if first == None {
		return nil, fmt.Errorf("%w: from %v", ErrUnreachable, start)
	}

	return func(yield func(grid.Coord) bool) {
		pos, dir := start, first
		for dir != Arrived {
			pos = pos.Add(dir.Delta())
			if r.grid.At(pos) == grid.Void {
				continue
			}
			dir = r.directions.At(pos)
			if !yield(pos) {
				return
			}
		}
	}, nil
}

// RouteSlice collects Route(start) into a slice. A route from a station is
// an empty, non-nil slice.
func (r *Result) RouteSlice(start grid.Coord) ([]grid.Coord, error) {
	seq, err := r.Route(start)
	if err != nil {
		return nil, err
	}
	out := make([]grid.Coord, 0, r.distances.At(start))
	for c := range seq {
		out = append(out, c)
	}
	return out, nil
}

// Routes answers many route queries concurrently, using at most the
// RouteWorkers goroutines configured at Compute time. routes[i] belongs to
// starts[i]. The first failing query cancels the rest and its error, tagged
// with the query index, is returned.
func (r *Result) Routes(ctx context.Context, starts []grid.Coord) ([][]grid.Coord, error) {
	routes := make([][]grid.Coord, len(starts))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers)
	for i, start := range starts {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			route, err := r.RouteSlice(start)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			routes[i] = route
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return routes, nil
}
