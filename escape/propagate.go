package escape

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/katalvlaran/spacegrid/grid"
)

// job is a pending relay: cast beams from at, settling cells at hop.
type job struct {
	at  int
	hop int64
}

// propagator encapsulates mutable propagation state for one distance width.
type propagator[T constraints.Signed] struct {
	grid  *grid.Grid
	opts  *Options
	dist  cells[T]
	dirs  []Direction
	queue []job
}

// Compute runs the multi-source beam propagation over g and returns the
// frozen distance and direction maps.
//
// Behavior:
//  1. Every Station gets distance 0 and Arrived, and queues a job at hop 1.
//  2. Jobs are taken first-in first-out. Each casts a beam Down, Right, Up
//     and Left. A beam stops at the border, at a Station or Singularity, and
//     at a Node already settled at a distance ≤ the beam's hop. Void cells
//     settled at ≤ hop are crossed unchanged. Any other cell is settled with
//     the beam's hop and the direction pointing back at the job's origin.
//  3. A Node settled by a beam raises the beam's hop by one, queues a job
//     at the new hop and the beam carries on past it.
//
// Returns ErrNilGrid, ErrOptionViolation or ErrCapacityOverflow before any
// traversal starts, or the context error if cancelled mid-run.
//
// Complexity: O(J×(R+C)) time where J is the number of jobs, O(R×C) memory.
func Compute(g *grid.Grid, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g == nil {
		return nil, ErrNilGrid
	}

	width, err := SmallestWidth(g.Size(), o.MaxWidth)
	if err != nil {
		return nil, err
	}

	dirs := make([]Direction, g.Size())
	var store distanceStore
	switch width {
	case Width8:
		store, err = run[int8](g, dirs, &o)
	case Width16:
		store, err = run[int16](g, dirs, &o)
	case Width32:
		store, err = run[int32](g, dirs, &o)
	default:
		store, err = run[int64](g, dirs, &o)
	}
	if err != nil {
		return nil, err
	}

	return newResult(g, width, store, dirs, o.RouteWorkers), nil
}

// ComputeAny is Compute for a grid of unknown static type; see grid.FromAny.
// Inputs that are not 2D integer arrays fail with grid.ErrTypeMismatch.
func ComputeAny(v any, opts ...Option) (*Result, error) {
	g, err := grid.FromAny(v)
	if err != nil {
		return nil, err
	}
	return Compute(g, opts...)
}

// run allocates distances of width T and propagates into them.
func run[T constraints.Signed](g *grid.Grid, dirs []Direction, o *Options) (distanceStore, error) {
	p := &propagator[T]{
		grid: g,
		opts: o,
		dist: make(cells[T], g.Size()),
		dirs: dirs,
	}
	if err := p.loop(); err != nil {
		return nil, err
	}
	return p.dist, nil
}

// loop seeds the stations and drains the job queue.
func (p *propagator[T]) loop() error {
	for i := range p.dist {
		p.dist[i] = Unreachable
	}
	for _, s := range p.grid.Stations() {
		i := p.grid.Index(s)
		p.dist[i] = 0
		p.dirs[i] = Arrived
		p.enqueue(i, 1)
	}

	for head := 0; head < len(p.queue); head++ {
		select {
		case <-p.opts.Ctx.Done():
			return fmt.Errorf("escape: propagation cancelled: %w", p.opts.Ctx.Err())
		default:
		}
		j := p.queue[head]
		for _, d := range fanOut {
			p.beam(j, d)
		}
	}
	p.queue = nil
	return nil
}

// enqueue records a relay job at index i with the given hop.
func (p *propagator[T]) enqueue(i int, hop int64) {
	p.queue = append(p.queue, job{at: i, hop: hop})
	p.opts.OnEnqueue(p.grid.Coordinate(i), hop)
}

// beam walks from the job's origin in direction d until it is blocked.
func (p *propagator[T]) beam(j job, d Direction) {
	dr, dc := d.Delta()
	back := d.Reverse()
	pos, hop := p.grid.Coordinate(j.at), j.hop
	for {
		pos = pos.Add(dr, dc)
		if !p.grid.InBounds(pos) {
			return
		}
		i := p.grid.Index(pos)
		kind := p.grid.KindAt(i)
		if kind == grid.Station || kind == grid.Singularity {
			return
		}
		if cur := int64(p.dist[i]); cur >= 0 && cur <= hop {
			if kind == grid.Node {
				return
			}
			continue
		}
		p.dist[i] = T(hop)
		p.dirs[i] = back
		p.opts.OnSettle(pos, hop, back)
		if kind == grid.Node {
			hop++
			p.enqueue(i, hop)
		}
	}
}
