// Package spacegrid finds escape routes across a grid of relays, stations
// and singularities.
//
// What is spacegrid?
//
//	A small library plus service that answers, for every cell of a grid:
//		• how many relay hops separate it from the nearest station
//		• which way to head next to get there
//		• what fraction of the grid can escape at all
//
// Travel along an open straight line is free; passing a relay costs one hop
// and starts a new line from the relay. Singularities block everything.
//
// Layout:
//
//	grid/               the Grid type, cell kinds, text and JSON forms
//	escape/             propagation, distance and direction maps, routes, snapshots
//	internal/config     TOML configuration
//	internal/cache      result cache (memory, file, Redis)
//	internal/server     HTTP service
//	internal/cli        the spacegrid command
//	cmd/spacegrid       main package
//
// Quick example:
//
//	    0 1 0 2        >>>+
//	    0 3 0 1   →    ·#>^
//
// left is the grid, right the direction map: every reachable cell points
// along its shortest route, the station is '+', the singularity '#' and
// the one cell with no way out '·'.
//
//	go install github.com/katalvlaran/spacegrid/cmd/spacegrid@latest
package spacegrid
