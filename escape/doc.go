// Package escape computes, for every cell of a grid.Grid, the shortest
// escape route to the nearest Station, and reconstructs the waypoints of
// that route for any starting cell.
//
// What
//
//   - Travel along an unobstructed straight line (a beam) is free,
//     whatever its length.
//   - Node cells relay beams: passing one costs an extra hop and turns it
//     into a new beam source.
//   - Singularity cells are opaque; beams stop in front of them.
//   - Compute returns a Result holding:
//   - DistanceMap: hops to the nearest station per cell, or Unreachable (-1)
//   - DirectionMap: the next step per cell, Arrived on stations, None if unreachable
//   - SafeFactor: reachable cells / all cells (NaN for an empty grid)
//   - Result.Route walks the direction map from a start cell and yields the
//     decision points (Nodes and Stations) of a shortest route.
//
// Why
//
//   - Evacuation planning over sparse relay networks where distance is
//     counted in relay hops, not in cells.
//
// Determinism
//
//	Jobs are drained first-in first-out and each job casts its beams in the
//	fixed order Down, Right, Up, Left, so recomputing an unchanged grid gives
//	identical maps. Where a cell is equally far via two beams the first one
//	to settle it wins; callers should accept any direction consistent with
//	the minimal distance rather than one particular symbol.
//
// Distance width
//
//	Distances are stored in the narrowest signed width (8, 16, 32 or 64 bits)
//	that can count the grid's cells. WithMaxWidth caps that choice; grids that
//	do not fit fail with ErrCapacityOverflow.
//
// Concurrency
//
//	Compute is sequential. The returned Result is never mutated, so any number
//	of goroutines may call Route, RouteSlice or Routes on it at once.
//
// Complexity (R×C grid, J relay jobs)
//
//   - Compute: O(J×(R+C)) time, O(R×C) memory.
//   - Route:   O(R×C) worst case per walk, O(1) extra memory.
//   - Verify:  O(R×C).
//
// Usage
//
//	g, _ := grid.ParseString("02\n")
//	res, err := escape.Compute(g)
//	if err != nil {
//	    // ErrNilGrid, ErrOptionViolation, ErrCapacityOverflow or a context error
//	}
//	route, err := res.Route(grid.Coord{Row: 0, Col: 0})
//	if err != nil {
//	    // ErrOutOfBounds or ErrUnreachable
//	}
//	for wp := range route {
//	    fmt.Println(wp)
//	}
//
// Options
//
//   - WithContext(ctx):      cancel a long propagation.
//   - WithMaxWidth(w):       widest distance width allowed.
//   - WithRouteWorkers(n):   goroutine bound for Result.Routes.
//   - WithOnEnqueue(fn):     hook run when a relay job is queued.
//   - WithOnSettle(fn):      hook run when a cell gets a distance.
//
// Errors
//
//   - ErrNilGrid            nil grid passed to Compute.
//   - grid.ErrTypeMismatch  ComputeAny got something that is not a 2D integer array.
//   - ErrCapacityOverflow   too many cells for the allowed distance width.
//   - ErrOptionViolation    invalid Option.
//   - ErrOutOfBounds        route query outside the grid.
//   - ErrUnreachable        route query from a cell with no route.
//   - ErrCorruptMaps        Verify or Restore found inconsistent maps.
package escape
