// Package escape defines the direction symbols, distance widths, options
// and sentinel errors used by the escape-route propagator and walker.
package escape

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/spacegrid/grid"
)

// Sentinel errors for escape computations and route queries.
var (
	// ErrNilGrid is returned when Compute is given a nil grid.
	ErrNilGrid = errors.New("escape: grid is nil")

	// ErrCapacityOverflow is returned when the grid has more cells than the
	// widest permitted distance width can count.
	ErrCapacityOverflow = errors.New("escape: grid too large for distance width")

	// ErrOutOfBounds is returned for a route query outside the grid.
	ErrOutOfBounds = errors.New("escape: coordinates out of bounds")

	// ErrUnreachable is returned for a route query from a cell with no route to a station.
	ErrUnreachable = errors.New("escape: no route to a station")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("escape: invalid option supplied")

	// ErrCorruptMaps is returned when distance and direction maps break an invariant.
	ErrCorruptMaps = errors.New("escape: inconsistent distance and direction maps")
)

// Direction is the single next step from a cell towards its nearest station.
type Direction uint8

const (
	// None marks an unreachable cell.
	None Direction = iota
	// Up moves to the previous row.
	Up
	// Down moves to the next row.
	Down
	// Left moves to the previous column.
	Left
	// Right moves to the next column.
	Right
	// Arrived marks a station.
	Arrived
)

// fanOut is the order in which a job casts its four beams.
var fanOut = [4]Direction{Down, Right, Up, Left}

// symbols holds the one-byte rendering of each Direction.
var symbols = [...]byte{None: ' ', Up: '^', Down: 'v', Left: '<', Right: '>', Arrived: '+'}

// Reverse returns the opposite cardinal direction.
// None and Arrived are their own reverse.
func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// Delta returns the row and column offsets of one step in d.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

// Cardinal reports whether d is one of Up, Down, Left, Right.
func (d Direction) Cardinal() bool {
	return d >= Up && d <= Right
}

// Symbol returns the one-byte rendering: ' ', '^', 'v', '<', '>' or '+'.
func (d Direction) Symbol() byte {
	if int(d) < len(symbols) {
		return symbols[d]
	}
	return '?'
}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Arrived:
		return "arrived"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// ParseDirection maps a symbol produced by Symbol back to its Direction.
func ParseDirection(b byte) (Direction, error) {
	for d, s := range symbols {
		if s == b {
			return Direction(d), nil
		}
	}
	return None, fmt.Errorf("%w: unknown direction symbol %q", ErrCorruptMaps, b)
}

// MarshalText encodes d as its symbol.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte{d.Symbol()}, nil
}

// UnmarshalText decodes a single direction symbol.
func (d *Direction) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return fmt.Errorf("%w: direction %q is not one symbol", ErrCorruptMaps, text)
	}
	v, err := ParseDirection(text[0])
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Width is the bit width of the signed integers holding distances.
type Width uint8

// Supported distance widths.
const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// widths lists the supported widths, narrowest first.
var widths = [...]Width{Width8, Width16, Width32, Width64}

// Valid reports whether w is a supported width.
func (w Width) Valid() bool {
	switch w {
	case Width8, Width16, Width32, Width64:
		return true
	}
	return false
}

// Max returns the largest distance representable in w.
func (w Width) Max() int64 {
	switch w {
	case Width8:
		return math.MaxInt8
	case Width16:
		return math.MaxInt16
	case Width32:
		return math.MaxInt32
	case Width64:
		return math.MaxInt64
	}
	return 0
}

// SmallestWidth returns the narrowest width, no wider than limit, that can
// represent n. It fails with ErrCapacityOverflow when none can.
func SmallestWidth(n int, limit Width) (Width, error) {
	for _, w := range widths {
		if w > limit {
			break
		}
		if int64(n) <= w.Max() {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %d cells exceed %d-bit distances", ErrCapacityOverflow, n, limit)
}

// Option configures Compute via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks for Compute.
type Options struct {
	// Ctx allows cancellation; it is checked once per dequeued job.
	Ctx context.Context

	// MaxWidth is the widest distance width Compute may pick.
	MaxWidth Width

	// RouteWorkers bounds the goroutines used by Result.Routes.
	RouteWorkers int

	// OnEnqueue is called whenever a relay job is queued, stations included.
	OnEnqueue func(at grid.Coord, hop int64)

	// OnSettle is called whenever a cell receives a new distance.
	OnSettle func(at grid.Coord, hop int64, toward Direction)

	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - MaxWidth = Width64
//   - RouteWorkers = 8
//   - no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:          context.Background(),
		MaxWidth:     Width64,
		RouteWorkers: 8,
		OnEnqueue:    func(grid.Coord, int64) {},
		OnSettle:     func(grid.Coord, int64, Direction) {},
	}
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxWidth caps the distance width. Grids whose cell count does not fit
// fail with ErrCapacityOverflow.
func WithMaxWidth(w Width) Option {
	return func(o *Options) {
		if !w.Valid() {
			o.err = fmt.Errorf("%w: unsupported width %d", ErrOptionViolation, w)
			return
		}
		o.MaxWidth = w
	}
}

// WithRouteWorkers bounds the concurrency of Result.Routes (n ≥ 1).
func WithRouteWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: RouteWorkers must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.RouteWorkers = n
	}
}

// WithOnEnqueue registers a callback run when a job is queued.
func WithOnEnqueue(fn func(at grid.Coord, hop int64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnSettle registers a callback run when a cell is settled.
func WithOnSettle(fn func(at grid.Coord, hop int64, toward Direction)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSettle = fn
		}
	}
}
